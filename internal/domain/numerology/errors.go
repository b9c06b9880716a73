package numerology

import (
	"errors"
	"fmt"
)

// ExpectedDateFormat is the only birth date layout the engine accepts.
const ExpectedDateFormat = "DD.MM.YYYY"

var (
	// ErrInvalidBirthDate is matched by every *FormatError.
	ErrInvalidBirthDate = errors.New("invalid birth date")

	// ErrUnknownNumberKind is returned when a partial calculation names a number
	// the engine does not know.
	ErrUnknownNumberKind = errors.New("unknown number kind")
)

// FormatError reports a birth date string that does not split into a valid
// day, month and year.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid birth date %q: %s, expected %s", e.Input, e.Reason, ExpectedDateFormat)
}

// Is lets errors.Is(err, ErrInvalidBirthDate) match any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidBirthDate
}

// Side identifies which participant of a compatibility calculation failed.
type Side string

const (
	SideFirst  Side = "first"
	SideSecond Side = "second"
)

// ComputationError is returned by the compatibility scorer when one of the
// two birth dates could not be parsed. No partial score is produced.
type ComputationError struct {
	Side Side
	Err  error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("compatibility calculation failed: %s birth date: %v", e.Side, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
