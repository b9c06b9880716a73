package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/platform/logger"
	"github.com/phrazzld/numerology-api/internal/store"
)

// MaxListLimit caps a single List page.
const MaxListLimit = 100

// PostgresReportStore implements the store.ReportStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReportStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReportStore creates a new PostgreSQL implementation of the ReportStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReportStore(db store.DBTX, logger *slog.Logger) *PostgresReportStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReportStore{
		db:     db,
		logger: logger.With(slog.String("component", "report_store")),
	}
}

// Ensure PostgresReportStore implements store.ReportStore interface
var _ store.ReportStore = (*PostgresReportStore)(nil)

// Create implements store.ReportStore.Create.
func (s *PostgresReportStore) Create(ctx context.Context, report *domain.SavedReport) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := report.Validate(); err != nil {
		log.Warn("report validation failed during create",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	payload, err := json.Marshal(report.Report)
	if err != nil {
		log.Error("failed to encode report payload",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return store.NewStoreError("report", "create", "failed to encode payload", err)
	}

	query := `
		INSERT INTO numerology_reports (id, birth_date, name, life_path, destiny, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		report.ID,
		report.BirthDate,
		report.Name,
		report.LifePath,
		report.Destiny,
		payload,
		report.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to create report",
			slog.String("error", err.Error()),
			slog.String("report_id", report.ID.String()))
		return store.NewStoreError("report", "create", "insert failed", mapped)
	}

	log.Info("report created successfully",
		slog.String("report_id", report.ID.String()),
		slog.Int("life_path", report.LifePath))
	return nil
}

// GetByID implements store.ReportStore.GetByID.
func (s *PostgresReportStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving report by ID", slog.String("report_id", id.String()))

	query := `
		SELECT id, birth_date, name, life_path, destiny, payload, created_at
		FROM numerology_reports
		WHERE id = $1
	`

	var saved domain.SavedReport
	var payload []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&saved.ID,
		&saved.BirthDate,
		&saved.Name,
		&saved.LifePath,
		&saved.Destiny,
		&payload,
		&saved.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("report not found", slog.String("report_id", id.String()))
			return nil, store.ErrReportNotFound
		}
		log.Error("failed to get report by ID",
			slog.String("error", err.Error()),
			slog.String("report_id", id.String()))
		return nil, store.NewStoreError("report", "get", "query failed", MapError(err))
	}

	var report numerology.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		log.Error("failed to decode report payload",
			slog.String("error", err.Error()),
			slog.String("report_id", id.String()))
		return nil, store.NewStoreError("report", "get", "failed to decode payload", err)
	}
	saved.Report = &report

	return &saved, nil
}

// List implements store.ReportStore.List.
// A non-positive limit selects a page of 20; limits above MaxListLimit are capped.
func (s *PostgresReportStore) List(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing reports", slog.Int("limit", limit), slog.Int("offset", offset))

	query := `
		SELECT id, birth_date, name, life_path, destiny, created_at
		FROM numerology_reports
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list reports", slog.String("error", err.Error()))
		return nil, store.NewStoreError("report", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	reports := make([]*domain.SavedReport, 0, limit)
	for rows.Next() {
		var r domain.SavedReport
		if err := rows.Scan(&r.ID, &r.BirthDate, &r.Name, &r.LifePath, &r.Destiny, &r.CreatedAt); err != nil {
			log.Error("failed to scan report row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("report", "list", "scan failed", err)
		}
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating report rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("report", "list", "iteration failed", err)
	}

	return reports, nil
}

// Delete implements store.ReportStore.Delete.
func (s *PostgresReportStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM numerology_reports WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete report",
			slog.String("error", err.Error()),
			slog.String("report_id", id.String()))
		return store.NewStoreError("report", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrReportNotFound); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("report not found for delete", slog.String("report_id", id.String()))
		}
		return err
	}

	log.Info("report deleted successfully", slog.String("report_id", id.String()))
	return nil
}

// WithTx implements store.ReportStore.WithTx.
func (s *PostgresReportStore) WithTx(tx *sql.Tx) store.ReportStore {
	return &PostgresReportStore{
		db:     tx,
		logger: s.logger,
	}
}
