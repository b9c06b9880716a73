package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
)

// MockInterpreter implements generation.Interpreter for testing
type MockInterpreter struct {
	// InterpretFn allows test cases to mock the Interpret behavior
	InterpretFn func(ctx context.Context, report *numerology.Report) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	InterpretCalls struct {
		mu sync.Mutex

		// Count tracks how many times Interpret was called
		Count int

		// Reports contains all reports passed to Interpret calls
		Reports []*numerology.Report
	}
}

var _ generation.Interpreter = (*MockInterpreter)(nil)

// Interpret implements the generation.Interpreter interface
func (m *MockInterpreter) Interpret(ctx context.Context, report *numerology.Report) (string, error) {
	m.InterpretCalls.mu.Lock()
	m.InterpretCalls.Count++
	m.InterpretCalls.Reports = append(m.InterpretCalls.Reports, report)
	m.InterpretCalls.mu.Unlock()

	if m.InterpretFn != nil {
		return m.InterpretFn(ctx, report)
	}
	return m.Text, m.Err
}

// CallCount returns the number of Interpret calls so far.
func (m *MockInterpreter) CallCount() int {
	m.InterpretCalls.mu.Lock()
	defer m.InterpretCalls.mu.Unlock()
	return m.InterpretCalls.Count
}

// NewMockInterpreterWithText creates a MockInterpreter that returns text
func NewMockInterpreterWithText(text string) *MockInterpreter {
	return &MockInterpreter{Text: text}
}

// NewMockInterpreterWithError creates a MockInterpreter that returns err
func NewMockInterpreterWithError(err error) *MockInterpreter {
	return &MockInterpreter{Err: err}
}

// Reset resets the call tracking state
func (m *MockInterpreter) Reset() {
	m.InterpretCalls.mu.Lock()
	defer m.InterpretCalls.mu.Unlock()

	m.InterpretCalls.Count = 0
	m.InterpretCalls.Reports = nil
}
