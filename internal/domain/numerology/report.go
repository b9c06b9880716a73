package numerology

import "time"

const (
	// SquareMethod labels the energy grid section of a report.
	SquareMethod = "enhanced_pythagorean_square"

	// SystemLabel identifies the engine in every full report.
	SystemLabel = "Pythagorean numerology with planetary energy grid"
)

// PlanetPosition is the display record for one square digit.
type PlanetPosition struct {
	Planet
	Strength        Strength `json:"strength"`
	Count           int      `json:"count"`
	Recommendations []string `json:"recommendations"`
}

// CalculationDetails exposes the intermediate values behind the square.
type CalculationDetails struct {
	BirthDate         string `json:"birth_date"`
	BirthDigits       []int  `json:"birth_digits"`
	AdditionalNumbers []int  `json:"additional_numbers"`
	AllDigits         []int  `json:"all_digits"`
}

// EnhancedSquare is the energy grid merged with planet metadata and advice.
type EnhancedSquare struct {
	Square             [3][3]string           `json:"square"`
	PlanetPositions    map[int]PlanetPosition `json:"planet_positions"`
	LifePath           int                    `json:"life_path"`
	Destiny            int                    `json:"destiny"`
	Soul               int                    `json:"soul"`
	Mind               int                    `json:"mind"`
	Personality        int                    `json:"personality"`
	Power              int                    `json:"power"`
	EnergyTotals       map[int]int            `json:"energy_totals"`
	EnergyStrength     map[int]Strength       `json:"energy_strength"`
	HorizontalSums     [3]int                 `json:"horizontal_sums"`
	VerticalSums       [3]int                 `json:"vertical_sums"`
	DiagonalSums       [2]int                 `json:"diagonal_sums"`
	Recommendations    map[int][]string       `json:"recommendations"`
	Method             string                 `json:"method"`
	CalculationDetails CalculationDetails     `json:"calculation_details"`
}

// Report is the full aggregate returned to API callers.
type Report struct {
	PersonalNumbers PersonalNumberSet `json:"personal_numbers"`
	EnhancedSquare  EnhancedSquare    `json:"enhanced_square"`
	CalculationDate time.Time         `json:"calculation_date"`
	System          string            `json:"system"`
}

// ErrorResult is the shape every failed calculation takes at an external
// boundary (HTTP body, CLI output).
type ErrorResult struct {
	Error string `json:"error"`
}

// NewErrorResult wraps err for output.
func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Error: err.Error()}
}

// FullReport parses text and builds the full report stamped with now.
func FullReport(text, name string, now time.Time) (*Report, error) {
	bd, err := ParseBirthDate(text)
	if err != nil {
		return nil, err
	}
	return BuildReport(bd, name, now), nil
}

// BuildReport composes the personal numbers, the energy grid and the planet
// recommendations for an already parsed birth date.
func BuildReport(bd BirthDate, name string, now time.Time) *Report {
	numbers := PersonalNumbers(bd, name)
	return &Report{
		PersonalNumbers: numbers,
		EnhancedSquare:  buildEnhancedSquare(bd, numbers),
		CalculationDate: now.UTC(),
		System:          SystemLabel,
	}
}

func buildEnhancedSquare(bd BirthDate, numbers PersonalNumberSet) EnhancedSquare {
	grid := BuildEnergyGrid(bd)
	recommendations := PlanetRecommendations(grid.Counts)

	positions := make(map[int]PlanetPosition, 9)
	for d := 1; d <= 9; d++ {
		planet, _ := PlanetFor(d)
		positions[d] = PlanetPosition{
			Planet:          planet,
			Strength:        grid.Strength[d],
			Count:           grid.Counts[d],
			Recommendations: recommendations[d],
		}
	}

	return EnhancedSquare{
		Square:          grid.Square,
		PlanetPositions: positions,
		LifePath:        numbers.LifePath,
		Destiny:         numbers.Destiny,
		Soul:            numbers.Soul,
		Mind:            numbers.Mind,
		Personality:     numbers.Personality,
		Power:           numbers.Power,
		EnergyTotals:    grid.Counts,
		EnergyStrength:  grid.Strength,
		HorizontalSums:  grid.HorizontalSums,
		VerticalSums:    grid.VerticalSums,
		DiagonalSums:    grid.DiagonalSums,
		Recommendations: recommendations,
		Method:          SquareMethod,
		CalculationDetails: CalculationDetails{
			BirthDate:         bd.String(),
			BirthDigits:       grid.BirthDigits,
			AdditionalNumbers: grid.AdditionalNumbers[:],
			AllDigits:         grid.AllDigits,
		},
	}
}
