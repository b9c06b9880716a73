package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain"
)

// Paging defaults for GET /api/reports.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// getPathUUID extracts a UUID from the URL path parameters.
// Missing or malformed values wrap domain.ErrInvalidID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidID, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrInvalidID, paramName)
	}

	return id, nil
}

// getPaging reads limit and offset from the query string. Missing values
// take the defaults; limit is capped at MaxListLimit.
func getPaging(r *http.Request) (limit, offset int, err error) {
	limit = DefaultListLimit
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation)
		}
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("%w: offset must be a non-negative integer", domain.ErrValidation)
		}
	}

	return limit, offset, nil
}
