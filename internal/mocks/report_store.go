package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/numerology-api/internal/domain"
	"github.com/phrazzld/numerology-api/internal/store"
)

// MockReportStore implements store.ReportStore. Without function fields it
// keeps reports in memory.
type MockReportStore struct {
	CreateFn  func(ctx context.Context, report *domain.SavedReport) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error)
	ListFn    func(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error)
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	mu      sync.Mutex
	reports map[uuid.UUID]*domain.SavedReport

	// WithTxCalls counts WithTx invocations.
	WithTxCalls int
}

var _ store.ReportStore = (*MockReportStore)(nil)

// NewMockReportStore returns an empty in-memory store.
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{reports: make(map[uuid.UUID]*domain.SavedReport)}
}

func (m *MockReportStore) Create(ctx context.Context, report *domain.SavedReport) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, report)
	}
	if err := report.Validate(); err != nil {
		return store.NewStoreError("report", "create", "invalid report", store.ErrInvalidEntity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reports == nil {
		m.reports = make(map[uuid.UUID]*domain.SavedReport)
	}
	if _, exists := m.reports[report.ID]; exists {
		return store.NewStoreError("report", "create", "report already exists", store.ErrDuplicate)
	}
	saved := *report
	m.reports[report.ID] = &saved
	return nil
}

func (m *MockReportStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedReport, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, store.ErrReportNotFound
	}
	found := *report
	return &found, nil
}

func (m *MockReportStore) List(ctx context.Context, limit, offset int) ([]*domain.SavedReport, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}

	m.mu.Lock()
	all := make([]*domain.SavedReport, 0, len(m.reports))
	for _, r := range m.reports {
		summary := *r
		summary.Report = nil
		all = append(all, &summary)
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*domain.SavedReport{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockReportStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return store.ErrReportNotFound
	}
	delete(m.reports, id)
	return nil
}

// WithTx returns the same store; the in-memory map has no transactions.
func (m *MockReportStore) WithTx(tx *sql.Tx) store.ReportStore {
	m.mu.Lock()
	m.WithTxCalls++
	m.mu.Unlock()
	return m
}

// Len returns the number of stored reports.
func (m *MockReportStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reports)
}
