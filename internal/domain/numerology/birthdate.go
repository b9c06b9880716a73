package numerology

import (
	"fmt"
	"strconv"
	"strings"
)

// BirthDate is a parsed DD.MM.YYYY date. Only the shape and the field ranges
// are checked; 31.02.2000 is accepted because the reports have always treated
// the date as a digit source rather than a calendar day.
type BirthDate struct {
	Day   int
	Month int
	Year  int
}

// ParseBirthDate parses text in DD.MM.YYYY order. Leading zeros are optional
// for day and month. Any other shape fails with *FormatError.
func ParseBirthDate(text string) (BirthDate, error) {
	trimmed := strings.TrimSpace(text)
	tokens := strings.Split(trimmed, ".")
	if len(tokens) != 3 {
		return BirthDate{}, &FormatError{
			Input:  text,
			Reason: fmt.Sprintf("expected 3 dot-separated parts, got %d", len(tokens)),
		}
	}

	values := make([]int, 3)
	for i, token := range tokens {
		n, err := parseNumericToken(token)
		if err != nil {
			return BirthDate{}, &FormatError{Input: text, Reason: err.Error()}
		}
		values[i] = n
	}

	bd := BirthDate{Day: values[0], Month: values[1], Year: values[2]}
	if reason := bd.rangeProblem(tokens[2]); reason != "" {
		return BirthDate{}, &FormatError{Input: text, Reason: reason}
	}
	return bd, nil
}

// MustParseBirthDate is ParseBirthDate for literals known to be valid.
func MustParseBirthDate(text string) BirthDate {
	bd, err := ParseBirthDate(text)
	if err != nil {
		// ALLOW-PANIC: only used with compile-time literals
		panic(err)
	}
	return bd
}

// parseNumericToken accepts only ASCII digits; strconv.Atoi alone would also
// let signs through.
func parseNumericToken(token string) (int, error) {
	if token == "" {
		return 0, fmt.Errorf("empty date component")
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric date component %q", token)
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("date component %q out of range", token)
	}
	return n, nil
}

func (bd BirthDate) rangeProblem(yearToken string) string {
	switch {
	case bd.Day < 1 || bd.Day > 31:
		return fmt.Sprintf("day %d out of range 1-31", bd.Day)
	case bd.Month < 1 || bd.Month > 12:
		return fmt.Sprintf("month %d out of range 1-12", bd.Month)
	case len(yearToken) != 4 || bd.Year < 1000:
		return fmt.Sprintf("year %q is not a 4-digit year", yearToken)
	}
	return ""
}

// String renders the date back as DD.MM.YYYY.
func (bd BirthDate) String() string {
	return fmt.Sprintf("%02d.%02d.%d", bd.Day, bd.Month, bd.Year)
}

// BirthDigits returns the digits of the zero-padded day, the zero-padded month
// and the year, in that order. 15.03.1990 gives [1 5 0 3 1 9 9 0].
func (bd BirthDate) BirthDigits() []int {
	rendered := fmt.Sprintf("%02d%02d%d", bd.Day, bd.Month, bd.Year)
	digits := make([]int, 0, len(rendered))
	for _, r := range rendered {
		digits = append(digits, int(r-'0'))
	}
	return digits
}
