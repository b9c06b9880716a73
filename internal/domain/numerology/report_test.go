package numerology

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func TestFullReport(t *testing.T) {
	t.Parallel()

	report, err := FullReport("15.03.1990", "", fixedNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.System != SystemLabel {
		t.Errorf("Expected system %q, got %q", SystemLabel, report.System)
	}
	if !report.CalculationDate.Equal(fixedNow) {
		t.Errorf("Expected calculation date %v, got %v", fixedNow, report.CalculationDate)
	}

	pn := report.PersonalNumbers
	if pn.LifePath != 1 || pn.Destiny != 1 || pn.Soul != 6 || pn.Mind != 3 || pn.Personality != 1 {
		t.Errorf("Unexpected personal numbers: %+v", pn)
	}
	if pn.NameNumber != nil {
		t.Errorf("Expected no name number, got %d", *pn.NameNumber)
	}

	sq := report.EnhancedSquare
	if sq.LifePath != pn.LifePath || sq.Destiny != pn.Destiny || sq.Soul != pn.Soul ||
		sq.Mind != pn.Mind || sq.Personality != pn.Personality || sq.Power != pn.Power {
		t.Error("Expected square section to duplicate the personal numbers")
	}
	if sq.Method != SquareMethod {
		t.Errorf("Expected method %q, got %q", SquareMethod, sq.Method)
	}
	if diff := cmp.Diff([]int{28, 10, 26, 8}, sq.CalculationDetails.AdditionalNumbers); diff != "" {
		t.Errorf("AdditionalNumbers mismatch (-want +got):\n%s", diff)
	}
	if sq.CalculationDetails.BirthDate != "15.03.1990" {
		t.Errorf("Expected birth date 15.03.1990, got %s", sq.CalculationDetails.BirthDate)
	}

	if len(sq.PlanetPositions) != 9 {
		t.Fatalf("Expected 9 planet positions, got %d", len(sq.PlanetPositions))
	}
	sun := sq.PlanetPositions[1]
	if sun.Name != "Sun" || sun.Count != 3 || sun.Strength != StrengthStrong {
		t.Errorf("Unexpected position for digit 1: %+v", sun)
	}
	for d := 1; d <= 9; d++ {
		if len(sq.Recommendations[d]) == 0 {
			t.Errorf("Expected recommendations for digit %d", d)
		}
		if sq.PlanetPositions[d].Count != sq.EnergyTotals[d] {
			t.Errorf("Digit %d: position count %d, total %d", d, sq.PlanetPositions[d].Count, sq.EnergyTotals[d])
		}
	}
}

func TestFullReportWithName(t *testing.T) {
	t.Parallel()

	report, err := FullReport("15.03.1990", "Анна", fixedNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.PersonalNumbers.NameNumber == nil || *report.PersonalNumbers.NameNumber != 5 {
		t.Errorf("Expected name number 5, got %v", report.PersonalNumbers.NameNumber)
	}
	if report.PersonalNumbers.Name != "Анна" {
		t.Errorf("Expected name to be echoed, got %q", report.PersonalNumbers.Name)
	}
}

func TestFullReportInvalidDate(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "15-03-1990", "15.03", "aa.bb.cccc", "32.01.2000"} {
		report, err := FullReport(input, "", fixedNow)
		if report != nil {
			t.Errorf("%q: expected no report", input)
		}
		if !errors.Is(err, ErrInvalidBirthDate) {
			t.Errorf("%q: expected ErrInvalidBirthDate, got %v", input, err)
		}
	}
}

func TestFullReportIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := FullReport("29.09.1999", "Иван", fixedNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := FullReport("29.09.1999", "Иван", fixedNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Reports differ (-first +second):\n%s", diff)
	}
}

func TestReportJSONShape(t *testing.T) {
	t.Parallel()

	report, err := FullReport("15.03.1990", "", fixedNow)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal report: %v", err)
	}
	for _, key := range []string{"personal_numbers", "enhanced_square", "calculation_date", "system"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected top-level key %q", key)
		}
	}

	var date string
	if err := json.Unmarshal(raw["calculation_date"], &date); err != nil {
		t.Fatalf("calculation_date is not a string: %v", err)
	}
	if date != "2024-05-01T12:30:00Z" {
		t.Errorf("Expected RFC 3339 date, got %s", date)
	}

	var square struct {
		Square          [][]string                 `json:"square"`
		PlanetPositions map[string]json.RawMessage `json:"planet_positions"`
		EnergyStrength  map[string]string          `json:"energy_strength"`
	}
	if err := json.Unmarshal(raw["enhanced_square"], &square); err != nil {
		t.Fatalf("Failed to decode enhanced_square: %v", err)
	}
	if len(square.Square) != 3 || len(square.Square[0]) != 3 {
		t.Errorf("Expected a 3x3 square, got %v", square.Square)
	}
	if square.Square[0][0] != "111" {
		t.Errorf("Expected cell 1 to be \"111\", got %q", square.Square[0][0])
	}
	if len(square.PlanetPositions) != 9 {
		t.Errorf("Expected 9 planet positions, got %d", len(square.PlanetPositions))
	}
	if square.EnergyStrength["4"] != "absent" {
		t.Errorf("Expected digit 4 absent, got %q", square.EnergyStrength["4"])
	}

	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if diff := cmp.Diff(report, &back); diff != "" {
		t.Errorf("Report did not survive a JSON round trip (-want +got):\n%s", diff)
	}
}

func TestNewErrorResult(t *testing.T) {
	t.Parallel()

	_, err := FullReport("nonsense", "", fixedNow)
	data, mErr := json.Marshal(NewErrorResult(err))
	if mErr != nil {
		t.Fatalf("Failed to marshal error result: %v", mErr)
	}

	var body map[string]string
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("Failed to unmarshal error result: %v", err)
	}
	if len(body) != 1 || body["error"] == "" {
		t.Errorf("Expected a single error key, got %v", body)
	}
}
