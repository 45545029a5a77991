package aggregation

import "math"

// PercentileRank returns round(100 * strictlyLess / N) for x against the
// population. A value greater than every member ranks 100. Empty
// populations rank 0.
func PercentileRank(population []int, x int) int {
	n := len(population)
	if n == 0 {
		return 0
	}

	less := 0
	for _, v := range population {
		if v < x {
			less++
		}
	}
	if less == n {
		return 100
	}
	return int(math.Round(100 * float64(less) / float64(n)))
}

// PacePercentile ranks a solve time where lower is better: the result
// reads "faster than N% of players". Ties share credit at half weight so
// small tied groups avoid false 0% or 100% extremes. Returns nil when
// the population is below MinPaceSampleSize.
func PacePercentile(population []int, x int) *int {
	n := len(population)
	if n < MinPaceSampleSize {
		return nil
	}

	slower, tied := 0, 0
	for _, v := range population {
		switch {
		case v > x:
			slower++
		case v == x:
			tied++
		}
	}

	credit := float64(slower)
	if tied > 1 {
		credit += 0.5 * float64(tied-1)
	}
	pct := int(math.Round(100 * credit / float64(n)))
	return &pct
}
