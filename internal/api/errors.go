package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/numerology-api/internal/api/shared"
	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
	"github.com/phrazzld/numerology-api/internal/service"
	"github.com/phrazzld/numerology-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var compErr *numerology.ComputationError

	switch {
	// Bad request errors
	case errors.Is(err, numerology.ErrInvalidBirthDate),
		errors.Is(err, numerology.ErrUnknownNumberKind),
		errors.As(err, &compErr),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Optional features that are switched off
	case errors.Is(err, service.ErrPersistenceDisabled),
		errors.Is(err, service.ErrInterpretationDisabled),
		errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrInterpretationFailed):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Engine input errors only echo what the caller
// sent, so their messages are returned as is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var formatErr *numerology.FormatError
	var compErr *numerology.ComputationError

	switch {
	case errors.As(err, &compErr):
		return compErr.Error()
	case errors.As(err, &formatErr):
		return formatErr.Error()
	case errors.Is(err, numerology.ErrUnknownNumberKind):
		return fmt.Sprintf("Unknown number kind, expected one of: %s", kindList())
	case errors.Is(err, service.ErrEmptyBatch):
		return "Batch must contain at least one item"
	case errors.Is(err, service.ErrBatchTooLarge):
		return "Batch contains too many items"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid report ID"
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid report data"
	case errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Report not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Report already exists"
	case errors.Is(err, service.ErrPersistenceDisabled):
		return "Report storage is not available"
	case errors.Is(err, service.ErrInterpretationDisabled):
		return "Interpretation is not available"
	case errors.Is(err, generation.ErrTransientFailure):
		return "Interpretation service is temporarily unavailable"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Interpretation was blocked by content filters"
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrInterpretationFailed):
		return "Failed to generate interpretation"
	default:
		return "An unexpected error occurred"
	}
}

func kindList() string {
	kinds := numerology.NumberKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the generic message of unmapped (500) errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field and rule.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
