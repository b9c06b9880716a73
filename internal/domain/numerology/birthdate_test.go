package numerology

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseBirthDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected BirthDate
	}{
		{name: "zero padded", input: "15.03.1990", expected: BirthDate{15, 3, 1990}},
		{name: "without padding", input: "5.3.1990", expected: BirthDate{5, 3, 1990}},
		{name: "surrounding whitespace", input: "  20.07.1985\n", expected: BirthDate{20, 7, 1985}},
		{name: "day not checked against month", input: "31.02.2000", expected: BirthDate{31, 2, 2000}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBirthDate(tc.input)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestParseBirthDateErrors(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"not-a-date",
		"15/03/1990",
		"15.03",
		"15.03.1990.1",
		"15..1990",
		"aa.03.1990",
		"15.03.19x0",
		"+5.03.1990",
		"00.03.1990",
		"32.03.1990",
		"15.13.1990",
		"15.00.1990",
		"15.03.990",
		"15.03.0990",
		"15.03.19900",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseBirthDate(input)
			if err == nil {
				t.Fatalf("Expected error for %q", input)
			}

			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Expected *FormatError, got %T", err)
			}
			if !errors.Is(err, ErrInvalidBirthDate) {
				t.Error("Expected error to match ErrInvalidBirthDate")
			}
			if !strings.Contains(err.Error(), ExpectedDateFormat) {
				t.Errorf("Expected message to mention %s, got %q", ExpectedDateFormat, err.Error())
			}
		})
	}
}

func TestBirthDateRendering(t *testing.T) {
	t.Parallel()

	bd := MustParseBirthDate("5.3.1990")
	if got := bd.String(); got != "05.03.1990" {
		t.Errorf("Expected 05.03.1990, got %s", got)
	}

	expected := []int{0, 5, 0, 3, 1, 9, 9, 0}
	if diff := cmp.Diff(expected, bd.BirthDigits()); diff != "" {
		t.Errorf("BirthDigits mismatch (-want +got):\n%s", diff)
	}
}
