package numerology

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(n int) *int { return &n }

func TestPersonalNumbers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		date     string
		expected PersonalNumberSet
	}{
		{
			name: "15.03.1990",
			date: "15.03.1990",
			expected: PersonalNumberSet{
				LifePath: 1, Destiny: 1, Soul: 6, Mind: 3,
				Personality: 1, Power: 1, Ruling: 9, Problem: 1,
				BirthDate: "15.03.1990", Method: PersonalNumbersMethod,
			},
		},
		{
			name: "20.07.1985",
			date: "20.07.1985",
			expected: PersonalNumberSet{
				LifePath: 5, Destiny: 5, Soul: 2, Mind: 7,
				Personality: 5, Power: 1, Ruling: 9, Problem: 5,
				BirthDate: "20.07.1985", Method: PersonalNumbersMethod,
			},
		},
		{
			name: "master mind number",
			date: "05.11.2001",
			expected: PersonalNumberSet{
				LifePath: 1, Destiny: 1, Soul: 5, Mind: 11,
				Personality: 3, Power: 4, Ruling: 7, Problem: 8,
				BirthDate: "05.11.2001", Method: PersonalNumbersMethod,
			},
		},
		{
			name: "master ruling number",
			date: "31.02.2000",
			expected: PersonalNumberSet{
				LifePath: 8, Destiny: 8, Soul: 4, Mind: 2,
				Personality: 2, Power: 1, Ruling: 33, Problem: 5,
				BirthDate: "31.02.2000", Method: PersonalNumbersMethod,
			},
		},
		{
			name: "master life path",
			date: "01.01.1991",
			expected: PersonalNumberSet{
				LifePath: 22, Destiny: 22, Soul: 1, Mind: 1,
				Personality: 2, Power: 3, Ruling: 2, Problem: 6,
				BirthDate: "01.01.1991", Method: PersonalNumbersMethod,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PersonalNumbers(MustParseBirthDate(tc.date), "")
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("PersonalNumbers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPersonalNumbersRange(t *testing.T) {
	t.Parallel()

	for year := 1900; year <= 2030; year += 7 {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 31; day += 3 {
				set := PersonalNumbers(BirthDate{Day: day, Month: month, Year: year}, "Мария")
				for _, n := range []int{
					set.LifePath, set.Destiny, set.Soul, set.Mind,
					set.Personality, set.Power, set.Ruling, set.Problem, *set.NameNumber,
				} {
					if !validNumber(n) {
						t.Fatalf("%02d.%02d.%d produced out-of-range number %d", day, month, year, n)
					}
				}
			}
		}
	}
}

func TestNameNumber(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected *int
	}{
		{name: "empty", input: "", expected: nil},
		{name: "whitespace only", input: "   ", expected: nil},
		{name: "latin letters are ignored", input: "John", expected: nil},
		{name: "simple", input: "Анна", expected: intPtr(5)},
		{name: "case insensitive", input: "АННА", expected: intPtr(5)},
		{name: "master eleven", input: "Иван", expected: intPtr(11)},
		{name: "mixed scripts and punctuation", input: "Анна-Maria 2", expected: intPtr(5)},
		{name: "yo has its own value", input: "Ё", expected: intPtr(7)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, NameNumber(tc.input)); diff != "" {
				t.Errorf("NameNumber(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestLetterValueCycle(t *testing.T) {
	t.Parallel()

	expected := map[rune]int{'А': 1, 'З': 9, 'И': 1, 'С': 1, 'Щ': 9, 'Ъ': 1, 'Я': 6, 'я': 6}
	for r, want := range expected {
		got, ok := LetterValue(r)
		if !ok || got != want {
			t.Errorf("LetterValue(%q) = %d, %v; expected %d", r, got, ok, want)
		}
	}
	if _, ok := LetterValue('Q'); ok {
		t.Error("Expected Latin letter to have no value")
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()

	got, err := Number(KindLifePath, "15.03.1990")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != 1 {
		t.Errorf("Expected life path 1, got %d", got)
	}

	_, err = Number(KindSoul, "not-a-date")
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("Expected *FormatError to surface unchanged, got %v", err)
	}

	_, err = Number(NumberKind("luck"), "15.03.1990")
	if !errors.Is(err, ErrUnknownNumberKind) {
		t.Errorf("Expected ErrUnknownNumberKind, got %v", err)
	}
}

func TestParseNumberKind(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"life_path", "Life-Path", " LIFE_PATH "} {
		kind, err := ParseNumberKind(input)
		if err != nil || kind != KindLifePath {
			t.Errorf("ParseNumberKind(%q) = %q, %v", input, kind, err)
		}
	}
	if _, err := ParseNumberKind("name_number"); !errors.Is(err, ErrUnknownNumberKind) {
		t.Errorf("Expected ErrUnknownNumberKind, got %v", err)
	}
	if len(NumberKinds()) != len(calculators) {
		t.Errorf("NumberKinds lists %d kinds, calculators has %d", len(NumberKinds()), len(calculators))
	}
}
