package generation

import "errors"

// Common errors returned by Interpreter implementations
var (
	// ErrInterpretationFailed is returned when interpretation fails for any general reason
	ErrInterpretationFailed = errors.New("failed to interpret report")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during interpretation")

	// ErrInvalidConfig is returned when the interpreter configuration is invalid
	ErrInvalidConfig = errors.New("invalid interpreter configuration")

	// ErrEmptyReport is returned when Interpret is called without a report
	ErrEmptyReport = errors.New("report cannot be nil")
)
