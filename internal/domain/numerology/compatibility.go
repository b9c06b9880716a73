package numerology

import "math"

// Compatibility levels, highest first.
const (
	LevelExcellent = "excellent"
	LevelGood      = "good"
	LevelAverage   = "average"
	LevelLow       = "low"
)

// CompatibilityResult scores two people against each other.
//
// Soul and destiny proximity are 100 - |a-b| × 10 and are not clamped: master
// numbers can push them below zero, which drags the final score down with them.
type CompatibilityResult struct {
	First                PersonalNumberSet `json:"person1"`
	Second               PersonalNumberSet `json:"person2"`
	BaseCompatibility    int               `json:"base_compatibility"`
	SoulCompatibility    int               `json:"soul_compatibility"`
	DestinyCompatibility int               `json:"destiny_compatibility"`
	CompatibilityScore   int               `json:"compatibility_score"`
	Level                string            `json:"level"`
	Description          string            `json:"description"`
}

// Compatibility parses both dates and scores them. A parse failure on either
// side returns *ComputationError naming that side.
func Compatibility(first, second string) (*CompatibilityResult, error) {
	bd1, err := ParseBirthDate(first)
	if err != nil {
		return nil, &ComputationError{Side: SideFirst, Err: err}
	}
	bd2, err := ParseBirthDate(second)
	if err != nil {
		return nil, &ComputationError{Side: SideSecond, Err: err}
	}
	return CompatibilityOf(bd1, bd2), nil
}

// CompatibilityOf scores two parsed birth dates.
func CompatibilityOf(first, second BirthDate) *CompatibilityResult {
	p1 := PersonalNumbers(first, "")
	p2 := PersonalNumbers(second, "")

	base := BaseCompatibility(p1.LifePath, p2.LifePath)
	soul := proximityScore(p1.Soul, p2.Soul)
	destiny := proximityScore(p1.Destiny, p2.Destiny)
	score := int(math.Round(float64(base+soul+destiny) / 3))
	band := defaultTables.band(score)

	return &CompatibilityResult{
		First:                p1,
		Second:               p2,
		BaseCompatibility:    base,
		SoulCompatibility:    soul,
		DestinyCompatibility: destiny,
		CompatibilityScore:   score,
		Level:                band.Level,
		Description:          band.Description,
	}
}

// BaseCompatibility looks up the life path matrix. Master numbers use the
// row and column of their root digit.
func BaseCompatibility(lifePath1, lifePath2 int) int {
	return defaultTables.Compatibility[rootDigit(lifePath1)-1][rootDigit(lifePath2)-1]
}

func proximityScore(a, b int) int {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return 100 - diff*10
}

// DescribeScore returns the band for a score.
func DescribeScore(score int) Band {
	return defaultTables.band(score)
}

func (t *Tables) band(score int) Band {
	for _, b := range t.Bands {
		if score >= b.Min {
			return b
		}
	}
	return t.Bands[len(t.Bands)-1]
}
