package numerology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAdditionalNumbers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		date     string
		expected [4]int
	}{
		{"15.03.1990", [4]int{28, 10, 26, 8}},
		{"20.07.1985", [4]int{32, 5, 28, 10}},
		{"29.09.1999", [4]int{48, 12, 44, 8}},
		// 10 - 2×5 = 0: zero stays zero and its digit sum is zero too.
		{"05.11.2001", [4]int{10, 1, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.date, func(t *testing.T) {
			got := AdditionalNumbers(MustParseBirthDate(tc.date))
			if got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestAdditionalNumbersNegativeA3(t *testing.T) {
	t.Parallel()

	// 09.01.1000: digits sum to 11, 11 - 2×9 = -7 -> 7.
	got := AdditionalNumbers(BirthDate{Day: 9, Month: 1, Year: 1000})
	expected := [4]int{11, 2, 7, 7}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestBuildEnergyGrid(t *testing.T) {
	t.Parallel()

	grid := BuildEnergyGrid(MustParseBirthDate("15.03.1990"))

	expectedSquare := [3][3]string{
		{"111", "22", "3"},
		{"", "5", "6"},
		{"", "88", "99"},
	}
	if diff := cmp.Diff(expectedSquare, grid.Square); diff != "" {
		t.Errorf("Square mismatch (-want +got):\n%s", diff)
	}

	expectedCounts := map[int]int{1: 3, 2: 2, 3: 1, 4: 0, 5: 1, 6: 1, 7: 0, 8: 2, 9: 2}
	if diff := cmp.Diff(expectedCounts, grid.Counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}

	expectedStrength := map[int]Strength{
		1: StrengthStrong, 2: StrengthNormal, 3: StrengthWeak,
		4: StrengthAbsent, 5: StrengthWeak, 6: StrengthWeak,
		7: StrengthAbsent, 8: StrengthNormal, 9: StrengthNormal,
	}
	if diff := cmp.Diff(expectedStrength, grid.Strength); diff != "" {
		t.Errorf("Strength mismatch (-want +got):\n%s", diff)
	}

	if grid.HorizontalSums != [3]int{6, 2, 4} {
		t.Errorf("Expected horizontal sums [6 2 4], got %v", grid.HorizontalSums)
	}
	if grid.VerticalSums != [3]int{3, 5, 4} {
		t.Errorf("Expected vertical sums [3 5 4], got %v", grid.VerticalSums)
	}
	if grid.DiagonalSums != [2]int{6, 2} {
		t.Errorf("Expected diagonal sums [6 2], got %v", grid.DiagonalSums)
	}

	expectedPool := []int{1, 5, 0, 3, 1, 9, 9, 0, 2, 8, 1, 0, 2, 6, 8}
	if diff := cmp.Diff(expectedPool, grid.AllDigits); diff != "" {
		t.Errorf("AllDigits mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEnergyGridExcessive(t *testing.T) {
	t.Parallel()

	grid := BuildEnergyGrid(MustParseBirthDate("05.11.2001"))

	expectedSquare := [3][3]string{
		{"11111", "2", ""},
		{"", "5", ""},
		{"", "", ""},
	}
	if diff := cmp.Diff(expectedSquare, grid.Square); diff != "" {
		t.Errorf("Square mismatch (-want +got):\n%s", diff)
	}
	if grid.Strength[1] != StrengthExcessive {
		t.Errorf("Expected digit 1 to be excessive, got %s", grid.Strength[1])
	}
	if grid.HorizontalSums != [3]int{6, 1, 0} || grid.VerticalSums != [3]int{5, 2, 0} || grid.DiagonalSums != [2]int{6, 1} {
		t.Errorf("Unexpected line sums: h=%v v=%v d=%v", grid.HorizontalSums, grid.VerticalSums, grid.DiagonalSums)
	}
}

func TestEnergyGridInvariants(t *testing.T) {
	t.Parallel()

	for year := 1920; year <= 2025; year += 3 {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 31; day += 2 {
				bd := BirthDate{Day: day, Month: month, Year: year}
				grid := BuildEnergyGrid(bd)

				nonZero := 0
				for _, d := range grid.AllDigits {
					if d != 0 {
						nonZero++
					}
				}
				if grid.Total() != nonZero {
					t.Fatalf("%s: placed %d digits, pool has %d non-zero", bd, grid.Total(), nonZero)
				}

				placed := 0
				for r := 0; r < 3; r++ {
					for c := 0; c < 3; c++ {
						for _, ch := range grid.Square[r][c] {
							if ch == '0' {
								t.Fatalf("%s: zero placed in cell (%d,%d)", bd, r, c)
							}
							placed++
						}
					}
				}
				if placed != nonZero {
					t.Fatalf("%s: square holds %d digits, expected %d", bd, placed, nonZero)
				}

				lineTotal := grid.HorizontalSums[0] + grid.HorizontalSums[1] + grid.HorizontalSums[2]
				columnTotal := grid.VerticalSums[0] + grid.VerticalSums[1] + grid.VerticalSums[2]
				if lineTotal != nonZero || columnTotal != nonZero {
					t.Fatalf("%s: line totals %d/%d, expected %d", bd, lineTotal, columnTotal, nonZero)
				}

				if len(grid.Strength) != 9 {
					t.Fatalf("%s: %d strength labels, expected 9", bd, len(grid.Strength))
				}
			}
		}
	}
}

func TestStrengthFor(t *testing.T) {
	t.Parallel()

	expected := map[int]Strength{
		0: StrengthAbsent, 1: StrengthWeak, 2: StrengthNormal,
		3: StrengthStrong, 4: StrengthExcessive, 9: StrengthExcessive,
	}
	for count, want := range expected {
		if got := StrengthFor(count); got != want {
			t.Errorf("StrengthFor(%d) = %s, expected %s", count, got, want)
		}
	}
}
