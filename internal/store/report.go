package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain"
)

// ReportStore defines the interface for saved report persistence.
type ReportStore interface {
	// Create saves a new report to the store.
	// Returns ErrInvalidEntity wrapping the validation error if the report is invalid.
	Create(ctx context.Context, report *domain.SavedReport) error

	// GetByID retrieves a report, payload included, by its unique ID.
	// Returns ErrReportNotFound if the report does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error)

	// List returns report summaries, newest first. The Report payload of each
	// summary is nil. Returns an empty slice when nothing matches.
	List(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error)

	// Delete removes a report.
	// Returns ErrReportNotFound if the report does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ReportStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReportStore
}
