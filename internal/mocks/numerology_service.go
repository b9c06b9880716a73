package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/service"
)

// errNotMocked is returned by MockNumerologyService methods without a
// function field.
var errNotMocked = errors.New("mock: method not configured")

// MockNumerologyService implements service.NumerologyService for handler tests.
type MockNumerologyService struct {
	ReportFn        func(ctx context.Context, birthDate, name string) (*numerology.Report, error)
	NumberFn        func(ctx context.Context, kind, birthDate string) (*service.NumberResult, error)
	CompatibilityFn func(ctx context.Context, first, second string) (*numerology.CompatibilityResult, error)
	BatchFn         func(ctx context.Context, items []service.BatchItem) ([]service.BatchResult, error)
	SaveReportFn    func(ctx context.Context, birthDate, name string) (*domain.SavedReport, error)
	GetReportFn     func(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error)
	ListReportsFn   func(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error)
	DeleteReportFn  func(ctx context.Context, id uuid.UUID) error
	InterpretFn     func(ctx context.Context, birthDate, name string) (*service.Interpretation, error)
}

var _ service.NumerologyService = (*MockNumerologyService)(nil)

func (m *MockNumerologyService) Report(ctx context.Context, birthDate, name string) (*numerology.Report, error) {
	if m.ReportFn != nil {
		return m.ReportFn(ctx, birthDate, name)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) Number(ctx context.Context, kind, birthDate string) (*service.NumberResult, error) {
	if m.NumberFn != nil {
		return m.NumberFn(ctx, kind, birthDate)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) Compatibility(
	ctx context.Context,
	first, second string,
) (*numerology.CompatibilityResult, error) {
	if m.CompatibilityFn != nil {
		return m.CompatibilityFn(ctx, first, second)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) Batch(ctx context.Context, items []service.BatchItem) ([]service.BatchResult, error) {
	if m.BatchFn != nil {
		return m.BatchFn(ctx, items)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) SaveReport(ctx context.Context, birthDate, name string) (*domain.SavedReport, error) {
	if m.SaveReportFn != nil {
		return m.SaveReportFn(ctx, birthDate, name)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) GetReport(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error) {
	if m.GetReportFn != nil {
		return m.GetReportFn(ctx, id)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) ListReports(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error) {
	if m.ListReportsFn != nil {
		return m.ListReportsFn(ctx, limit, offset)
	}
	return nil, errNotMocked
}

func (m *MockNumerologyService) DeleteReport(ctx context.Context, id uuid.UUID) error {
	if m.DeleteReportFn != nil {
		return m.DeleteReportFn(ctx, id)
	}
	return errNotMocked
}

func (m *MockNumerologyService) Interpret(
	ctx context.Context,
	birthDate, name string,
) (*service.Interpretation, error) {
	if m.InterpretFn != nil {
		return m.InterpretFn(ctx, birthDate, name)
	}
	return nil, errNotMocked
}
