package generation

import (
	"context"

	"github.com/phrazzld/numerology-api/internal/domain/numerology"
)

// Interpreter produces a narrative reading of a numerology report.
// Implementations must be safe for concurrent use.
type Interpreter interface {
	// Interpret returns plain text describing the report's numbers and energy
	// grid. Errors wrap the sentinels in errors.go.
	Interpret(ctx context.Context, report *numerology.Report) (string, error)
}
