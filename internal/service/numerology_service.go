package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/numerology-api/internal/config"
	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
	"github.com/phrazzld/numerology-api/internal/platform/logger"
	"github.com/phrazzld/numerology-api/internal/platform/metrics"
	"github.com/phrazzld/numerology-api/internal/redact"
	"github.com/phrazzld/numerology-api/internal/store"
)

// Report sources recorded in metrics.
const (
	sourceSingle = "single"
	sourceBatch  = "batch"
	sourceNumber = "number"
	sourceSaved  = "saved"
)

// NumberResult is the answer to a partial calculation.
type NumberResult struct {
	Kind      numerology.NumberKind `json:"kind"`
	BirthDate string                `json:"birth_date"`
	Value     int                   `json:"value"`
}

// BatchItem is one entry of a batch request.
type BatchItem struct {
	BirthDate string
	Name      string
}

// BatchResult holds either a report or the error that prevented it.
type BatchResult struct {
	Report *numerology.Report
	Err    error
}

// Interpretation is a narrative reading of a report.
type Interpretation struct {
	Report *numerology.Report `json:"report"`
	Text   string             `json:"interpretation"`
	Cached bool               `json:"cached"`
}

// NumerologyService provides the numerology use cases.
type NumerologyService interface {
	// Report computes the full report for a birth date and optional name.
	Report(ctx context.Context, birthDate, name string) (*numerology.Report, error)

	// Number computes a single personal number.
	Number(ctx context.Context, kind, birthDate string) (*NumberResult, error)

	// Compatibility scores two birth dates against each other.
	Compatibility(ctx context.Context, first, second string) (*numerology.CompatibilityResult, error)

	// Batch computes many reports concurrently. Results keep input order and
	// per-item failures are reported in the result, not as the returned error.
	Batch(ctx context.Context, items []BatchItem) ([]BatchResult, error)

	// SaveReport computes and persists a report.
	SaveReport(ctx context.Context, birthDate, name string) (*domain.SavedReport, error)

	// GetReport retrieves a saved report with its payload.
	GetReport(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error)

	// ListReports returns saved report summaries, newest first.
	ListReports(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error)

	// DeleteReport removes a saved report.
	DeleteReport(ctx context.Context, id uuid.UUID) error

	// Interpret computes a report and asks the interpreter for a narrative.
	Interpret(ctx context.Context, birthDate, name string) (*Interpretation, error)
}

// Option configures optional dependencies of the service.
type Option func(*numerologyServiceImpl) error

// WithReportStore enables persistence. db, when non-nil, wraps writes in a
// transaction.
func WithReportStore(reports store.ReportStore, db store.TxBeginner) Option {
	return func(s *numerologyServiceImpl) error {
		if reports == nil {
			return errors.New("report store cannot be nil")
		}
		s.reports = reports
		s.db = db
		return nil
	}
}

// WithInterpreter enables interpretation. Narratives are cached in an LRU of
// cacheSize entries; a cacheSize of 0 disables caching.
func WithInterpreter(interpreter generation.Interpreter, cacheSize int) Option {
	return func(s *numerologyServiceImpl) error {
		if interpreter == nil {
			return errors.New("interpreter cannot be nil")
		}
		s.interpreter = interpreter
		if cacheSize > 0 {
			cache, err := lru.New[string, string](cacheSize)
			if err != nil {
				return fmt.Errorf("failed to create interpretation cache: %w", err)
			}
			s.cache = cache
		}
		return nil
	}
}

// WithMetrics records calculation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *numerologyServiceImpl) error {
		s.metrics = m
		return nil
	}
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *numerologyServiceImpl) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		s.now = now
		return nil
	}
}

type numerologyServiceImpl struct {
	logger       *slog.Logger
	now          func() time.Time
	batchWorkers int
	maxBatchSize int

	reports store.ReportStore
	db      store.TxBeginner

	interpreter generation.Interpreter
	cache       *lru.Cache[string, string]

	metrics *metrics.Metrics
}

// NewNumerologyService creates a NumerologyService.
// It returns an error if the calculation settings are invalid or an option fails.
func NewNumerologyService(
	cfg config.CalculationConfig,
	logger *slog.Logger,
	opts ...Option,
) (NumerologyService, error) {
	if cfg.BatchWorkers <= 0 {
		return nil, &ServiceError{Operation: "create_service", Message: "batch workers must be positive"}
	}
	if cfg.MaxBatchSize <= 0 {
		return nil, &ServiceError{Operation: "create_service", Message: "max batch size must be positive"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &numerologyServiceImpl{
		logger:       logger.With(slog.String("component", "numerology_service")),
		now:          time.Now,
		batchWorkers: cfg.BatchWorkers,
		maxBatchSize: cfg.MaxBatchSize,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, &ServiceError{Operation: "create_service", Message: "invalid option", Err: err}
		}
	}
	return s, nil
}

// Report computes the full report.
func (s *numerologyServiceImpl) Report(
	ctx context.Context,
	birthDate, name string,
) (*numerology.Report, error) {
	report, err := s.compute(ctx, birthDate, name)
	if err != nil {
		return nil, NewServiceError("report", "failed to compute report", err)
	}
	s.metrics.IncReports(sourceSingle, 1)
	return report, nil
}

func (s *numerologyServiceImpl) compute(
	ctx context.Context,
	birthDate, name string,
) (*numerology.Report, error) {
	report, err := numerology.FullReport(birthDate, name, s.now())
	if err != nil {
		s.recordFailure(ctx, "report", err)
		return nil, err
	}
	return report, nil
}

// Number computes one personal number.
func (s *numerologyServiceImpl) Number(
	ctx context.Context,
	kind, birthDate string,
) (*NumberResult, error) {
	k, err := numerology.ParseNumberKind(kind)
	if err != nil {
		s.recordFailure(ctx, "number", err)
		return nil, err
	}

	bd, err := numerology.ParseBirthDate(birthDate)
	if err != nil {
		s.recordFailure(ctx, "number", err)
		return nil, err
	}

	value, err := numerology.Calculate(k, bd)
	if err != nil {
		s.recordFailure(ctx, "number", err)
		return nil, NewServiceError("number", "failed to calculate number", err)
	}

	s.metrics.IncReports(sourceNumber, 1)
	return &NumberResult{Kind: k, BirthDate: bd.String(), Value: value}, nil
}

// Compatibility scores two birth dates.
func (s *numerologyServiceImpl) Compatibility(
	ctx context.Context,
	first, second string,
) (*numerology.CompatibilityResult, error) {
	result, err := numerology.Compatibility(first, second)
	if err != nil {
		s.recordFailure(ctx, "compatibility", err)
		return nil, err
	}
	s.metrics.IncCompatibility()
	return result, nil
}

// Batch computes the reports of items on at most batchWorkers goroutines.
func (s *numerologyServiceImpl) Batch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(items) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d items, maximum is %d", ErrBatchTooLarge, len(items), s.maxBatchSize)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	results := make([]BatchResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := s.compute(gctx, item.BirthDate, item.Name)
			results[i] = BatchResult{Report: report, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WarnContext(ctx, "batch cancelled", slog.Int("items", len(items)), slog.String("error", err.Error()))
		return nil, NewServiceError("batch", "batch cancelled", err)
	}

	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}
	s.metrics.IncReports(sourceBatch, ok)
	log.DebugContext(ctx, "batch computed",
		slog.Int("items", len(items)),
		slog.Int("succeeded", ok))

	return results, nil
}

// SaveReport computes a report and persists it, inside a transaction when
// a database handle was supplied.
func (s *numerologyServiceImpl) SaveReport(
	ctx context.Context,
	birthDate, name string,
) (*domain.SavedReport, error) {
	if s.reports == nil {
		return nil, ErrPersistenceDisabled
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	report, err := s.compute(ctx, birthDate, name)
	if err != nil {
		return nil, NewServiceError("save_report", "failed to compute report", err)
	}

	saved, err := domain.NewSavedReport(report, s.now())
	if err != nil {
		log.ErrorContext(ctx, "failed to create saved report", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("save_report", "failed to create saved report", err)
	}

	create := func(ctx context.Context, reports store.ReportStore) error {
		if err := reports.Create(ctx, saved); err != nil {
			log.ErrorContext(ctx, "failed to save report",
				slog.String("error", redact.Error(err)),
				slog.String("report_id", saved.ID.String()))
			return err
		}
		return nil
	}

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return create(ctx, s.reports.WithTx(tx))
		})
	} else {
		err = create(ctx, s.reports)
	}
	if err != nil {
		s.metrics.IncFailure(metrics.FailureStore)
		return nil, NewServiceError("save_report", "failed to save report to database", err)
	}

	s.metrics.IncReports(sourceSaved, 1)
	log.InfoContext(ctx, "report saved", slog.String("report_id", saved.ID.String()))
	return saved, nil
}

// GetReport retrieves a saved report.
func (s *numerologyServiceImpl) GetReport(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error) {
	if s.reports == nil {
		return nil, ErrPersistenceDisabled
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logStoreError(ctx, "failed to retrieve report", id, err)
		}
		return nil, NewServiceError("get_report", "failed to retrieve report", err)
	}
	return report, nil
}

// ListReports returns saved report summaries.
func (s *numerologyServiceImpl) ListReports(
	ctx context.Context,
	limit, offset int,
) ([]*domain.SavedReport, error) {
	if s.reports == nil {
		return nil, ErrPersistenceDisabled
	}

	reports, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		s.logStoreError(ctx, "failed to list reports", uuid.Nil, err)
		return nil, NewServiceError("list_reports", "failed to list reports", err)
	}
	return reports, nil
}

// DeleteReport removes a saved report.
func (s *numerologyServiceImpl) DeleteReport(ctx context.Context, id uuid.UUID) error {
	if s.reports == nil {
		return ErrPersistenceDisabled
	}

	if err := s.reports.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			s.logStoreError(ctx, "failed to delete report", id, err)
		}
		return NewServiceError("delete_report", "failed to delete report", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "report deleted",
		slog.String("report_id", id.String()))
	return nil
}

// Interpret computes a report and returns its narrative, serving repeated
// (birth date, name) pairs from the cache.
func (s *numerologyServiceImpl) Interpret(
	ctx context.Context,
	birthDate, name string,
) (*Interpretation, error) {
	if s.interpreter == nil {
		return nil, ErrInterpretationDisabled
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	report, err := s.compute(ctx, birthDate, name)
	if err != nil {
		return nil, NewServiceError("interpret", "failed to compute report", err)
	}

	key := cacheKey(report)
	if s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			log.DebugContext(ctx, "interpretation served from cache")
			return &Interpretation{Report: report, Text: text, Cached: true}, nil
		}
	}

	text, err := s.interpreter.Interpret(ctx, report)
	if err != nil {
		s.metrics.IncFailure(metrics.FailureInterpretation)
		log.ErrorContext(ctx, "interpretation failed", slog.String("error", redact.Error(err)))
		return nil, NewServiceError("interpret", "failed to interpret report", err)
	}

	if s.cache != nil {
		s.cache.Add(key, text)
	}
	return &Interpretation{Report: report, Text: text}, nil
}

// cacheKey uses the canonical birth date so "1.3.1990" and "01.03.1990"
// share an entry.
func cacheKey(report *numerology.Report) string {
	return report.PersonalNumbers.BirthDate + "\x00" + report.PersonalNumbers.Name
}

func (s *numerologyServiceImpl) recordFailure(ctx context.Context, operation string, err error) {
	kind := metrics.FailureOther
	switch {
	case errors.Is(err, numerology.ErrInvalidBirthDate):
		kind = metrics.FailureInvalidDate
	case errors.Is(err, numerology.ErrUnknownNumberKind):
		kind = metrics.FailureUnknownKind
	}
	s.metrics.IncFailure(kind)

	logger.FromContextOrDefault(ctx, s.logger).DebugContext(ctx, "calculation rejected",
		slog.String("operation", operation),
		slog.String("kind", kind),
		slog.String("error", redact.Error(err)))
}

func (s *numerologyServiceImpl) logStoreError(ctx context.Context, msg string, id uuid.UUID, err error) {
	s.metrics.IncFailure(metrics.FailureStore)
	attrs := []any{slog.String("error", redact.Error(err))}
	if id != uuid.Nil {
		attrs = append(attrs, slog.String("report_id", id.String()))
	}
	logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, msg, attrs...)
}
