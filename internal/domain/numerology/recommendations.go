package numerology

// maxRecommendationCount is the highest count with its own table entry;
// larger counts share it.
const maxRecommendationCount = 4

// Recommendations returns the advice list for a digit occurring count times.
// The result is never empty: unmapped combinations get the generic fallback.
func Recommendations(digit, count int) []string {
	return defaultTables.recommendations(digit, count)
}

func (t *Tables) recommendations(digit, count int) []string {
	if count < 0 {
		count = 0
	}
	if count > maxRecommendationCount {
		count = maxRecommendationCount
	}
	if byCount, ok := t.Recommendations[digit]; ok {
		if list := byCount[count]; len(list) > 0 {
			out := make([]string, len(list))
			copy(out, list)
			return out
		}
	}
	return []string{t.FallbackRecommendation}
}

// PlanetRecommendations returns the advice for every digit 1-9 given the
// occurrence counts of an energy grid.
func PlanetRecommendations(counts map[int]int) map[int][]string {
	out := make(map[int][]string, 9)
	for d := 1; d <= 9; d++ {
		out[d] = Recommendations(d, counts[d])
	}
	return out
}
