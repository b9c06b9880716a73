package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/store"
)

// Common service errors. Callers check them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrReportNotFound indicates that a saved report does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrReportNotFound = errors.New("report not found")

	// ErrPersistenceDisabled is returned by the saved-report operations when
	// no report store is configured. API layer should map this to 503.
	ErrPersistenceDisabled = errors.New("report persistence is not configured")

	// ErrInterpretationDisabled is returned by Interpret when no interpreter
	// is configured. API layer should map this to 503.
	ErrInterpretationDisabled = errors.New("report interpretation is not configured")

	// ErrEmptyBatch is returned when a batch has no items.
	ErrEmptyBatch = errors.New("batch must contain at least one item")

	// ErrBatchTooLarge is returned when a batch exceeds the configured maximum.
	ErrBatchTooLarge = errors.New("batch exceeds the maximum number of items")
)

// ServiceError wraps unexpected errors from the numerology service with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "save_report")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("numerology service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("numerology service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Sentinel and engine input errors are returned directly without wrapping,
// and store not-found errors become ErrReportNotFound.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrReportNotFound),
		errors.Is(err, ErrPersistenceDisabled),
		errors.Is(err, ErrInterpretationDisabled),
		errors.Is(err, ErrEmptyBatch),
		errors.Is(err, ErrBatchTooLarge):
		return err
	case errors.Is(err, store.ErrNotFound):
		return ErrReportNotFound
	case isInputError(err):
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// isInputError reports whether err was caused by caller supplied input.
func isInputError(err error) bool {
	var compErr *numerology.ComputationError
	return errors.Is(err, numerology.ErrInvalidBirthDate) ||
		errors.Is(err, numerology.ErrUnknownNumberKind) ||
		errors.As(err, &compErr)
}
