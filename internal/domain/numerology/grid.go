package numerology

import "strings"

// Strength is the qualitative label for how often a digit occurs in the square.
type Strength string

const (
	StrengthAbsent    Strength = "absent"
	StrengthWeak      Strength = "weak"
	StrengthNormal    Strength = "normal"
	StrengthStrong    Strength = "strong"
	StrengthExcessive Strength = "excessive"
)

// StrengthFor labels an occurrence count.
func StrengthFor(count int) Strength {
	switch {
	case count <= 0:
		return StrengthAbsent
	case count == 1:
		return StrengthWeak
	case count == 2:
		return StrengthNormal
	case count == 3:
		return StrengthStrong
	default:
		return StrengthExcessive
	}
}

// cell is a (row, column) position in the 3×3 square.
type cell struct {
	row, col int
}

// gridPositions is indexed by digit. Index 0 is unused: zeros are never placed.
var gridPositions = [10]cell{
	1: {0, 0}, 2: {0, 1}, 3: {0, 2},
	4: {1, 0}, 5: {1, 1}, 6: {1, 2},
	7: {2, 0}, 8: {2, 1}, 9: {2, 2},
}

// EnergyGrid is the populated Pythagorean square for one birth date.
type EnergyGrid struct {
	// Square holds each digit repeated once per occurrence, "" for empty cells.
	Square [3][3]string

	// Counts maps every digit 1-9 to its occurrence count (0 when absent).
	Counts map[int]int

	// Strength maps every digit 1-9 to its label.
	Strength map[int]Strength

	// Line strengths are counts of digit instances, not digit-value sums.
	HorizontalSums [3]int
	VerticalSums   [3]int
	DiagonalSums   [2]int

	BirthDigits       []int
	AdditionalNumbers [4]int
	AllDigits         []int
}

// AdditionalNumbers derives A1..A4 from a birth date:
//
//	A1 = sum of the birth digits
//	A2 = digit sum of A1
//	A3 = A1 - 2 × first digit of the day, absolute value when not positive
//	A4 = digit sum of A3
//
// The first digit of the day is its leading significant digit, so day 05 uses 5.
func AdditionalNumbers(bd BirthDate) [4]int {
	a1 := 0
	for _, d := range bd.BirthDigits() {
		a1 += d
	}
	a2 := DigitSum(a1)
	a3 := a1 - 2*Digits(bd.Day)[0]
	if a3 <= 0 {
		a3 = -a3
	}
	a4 := DigitSum(a3)
	return [4]int{a1, a2, a3, a4}
}

// BuildEnergyGrid tallies the birth digits plus the digits of the four
// additional numbers and places them into the square.
func BuildEnergyGrid(bd BirthDate) *EnergyGrid {
	birthDigits := bd.BirthDigits()
	additional := AdditionalNumbers(bd)

	allDigits := append([]int(nil), birthDigits...)
	for _, n := range additional {
		allDigits = append(allDigits, Digits(n)...)
	}

	counts := make(map[int]int, 9)
	for d := 1; d <= 9; d++ {
		counts[d] = 0
	}
	for _, d := range allDigits {
		if d != 0 {
			counts[d]++
		}
	}

	g := &EnergyGrid{
		Counts:            counts,
		Strength:          make(map[int]Strength, 9),
		BirthDigits:       birthDigits,
		AdditionalNumbers: additional,
		AllDigits:         allDigits,
	}

	for d := 1; d <= 9; d++ {
		pos := gridPositions[d]
		n := counts[d]
		g.Square[pos.row][pos.col] = strings.Repeat(string(rune('0'+d)), n)
		g.Strength[d] = StrengthFor(n)
		g.HorizontalSums[pos.row] += n
		g.VerticalSums[pos.col] += n
		if pos.row == pos.col {
			g.DiagonalSums[0] += n
		}
		if pos.row+pos.col == 2 {
			g.DiagonalSums[1] += n
		}
	}

	return g
}

// Total returns the number of digit instances placed in the square.
func (g *EnergyGrid) Total() int {
	total := 0
	for _, n := range g.Counts {
		total += n
	}
	return total
}
