package aggregation

import "math"

// DiversityScore computes the Shannon entropy of the day's region
// distribution, rounded to 3 decimals. Zero population or a single
// region both score 0.
func DiversityScore(regionCounts map[string]int) float64 {
	total := 0
	for _, c := range regionCounts {
		total += c
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, c := range regionCounts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return math.Round(entropy*1000) / 1000
}
