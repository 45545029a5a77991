package aggregation

import (
	"math"
	"sort"
	"time"

	"github.com/questday/qotd-backend/internal/domain"
)

// dayRollup bundles the three derived tables built from one day's user set.
type dayRollup struct {
	global  *domain.DailyAggregate
	regions []*domain.RegionStat
	answers []*domain.AnswerStat
}

func buildRollup(set *DaySet, idx *AnswerIndex, dateKey string, now time.Time) *dayRollup {
	total := len(set.Users)

	var (
		attempts, hints            int
		accuracySum, completionSum int
		countries                  = make(map[string]struct{})
		regionCounts               = make(map[string]int)
		paces                      []int
	)
	for _, u := range set.Users {
		attempts += u.AttemptsUsed
		hints += u.HintCount
		accuracySum += u.AccuracyPct
		completionSum += u.CompletionPct
		countries[u.Country] = struct{}{}
		regionCounts[u.Region]++
		if u.SolveSeconds != nil {
			paces = append(paces, *u.SolveSeconds)
		}
	}

	global := &domain.DailyAggregate{
		DateKey:           dateKey,
		TotalPlayers:      total,
		TotalAttempts:     attempts,
		TotalHints:        hints,
		DistinctAnswers:   idx.Len(),
		DistinctCountries: len(countries),
		DiversityScore:    DiversityScore(regionCounts),
		AvgAccuracy:       round2(mean(accuracySum, total)),
		AvgCompletion:     round2(mean(completionSum, total)),
		AvgHints:          round2(mean(hints, total)),
		MedianPaceSeconds: medianInt(paces),
		GeneratedAt:       now,
	}

	return &dayRollup{
		global:  global,
		regions: buildRegionStats(set, regionCounts, total, dateKey, now),
		answers: buildAnswerStats(idx, total, dateKey, now),
	}
}

func buildRegionStats(set *DaySet, regionCounts map[string]int, total int, dateKey string, now time.Time) []*domain.RegionStat {
	type regionAcc struct {
		accuracy, completion, hints int
		solveSum, solveCount        int
	}
	acc := make(map[string]*regionAcc, len(regionCounts))
	for region := range regionCounts {
		acc[region] = &regionAcc{}
	}
	for _, u := range set.Users {
		a := acc[u.Region]
		a.accuracy += u.AccuracyPct
		a.completion += u.CompletionPct
		a.hints += u.HintCount
		if u.SolveSeconds != nil {
			a.solveSum += *u.SolveSeconds
			a.solveCount++
		}
	}

	regions := make([]string, 0, len(regionCounts))
	for region := range regionCounts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	stats := make([]*domain.RegionStat, 0, len(regions))
	for _, region := range regions {
		players := regionCounts[region]
		a := acc[region]

		var avgSolve *float64
		if a.solveCount > 0 {
			v := round2(float64(a.solveSum) / float64(a.solveCount))
			avgSolve = &v
		}

		stats = append(stats, &domain.RegionStat{
			DateKey:         dateKey,
			Region:          region,
			Players:         players,
			AvgAccuracy:     round2(mean(a.accuracy, players)),
			AvgCompletion:   round2(mean(a.completion, players)),
			AvgHints:        round2(mean(a.hints, players)),
			AvgSolveSeconds: avgSolve,
			ShareOfPlayers:  round3(mean(players, total)),
			GeneratedAt:     now,
		})
	}
	return stats
}

func buildAnswerStats(idx *AnswerIndex, total int, dateKey string, now time.Time) []*domain.AnswerStat {
	ranked := idx.Ranked()
	stats := make([]*domain.AnswerStat, 0, len(ranked))
	for i, entry := range ranked {
		stats = append(stats, &domain.AnswerStat{
			DateKey:          dateKey,
			Answer:           entry.Answer,
			PlayerCount:      entry.PlayerCount(),
			PercentOfPlayers: round2(100 * mean(entry.PlayerCount(), total)),
			Rank:             i + 1,
			IsRare:           entry.IsRare(),
			FirstMentionUser: entry.FirstUser,
			FirstMentionTime: entry.FirstTime,
			Countries:        sortedKeys(entry.Countries),
			Regions:          sortedKeys(entry.Regions),
			GeneratedAt:      now,
		})
	}
	return stats
}

// medianInt returns the median of the values, nil for an empty slice.
// Even-sized populations take the rounded mean of the middle pair.
func medianInt(values []int) *int {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	var m int
	if len(sorted)%2 == 1 {
		m = sorted[mid]
	} else {
		m = int(math.Round(float64(sorted[mid-1]+sorted[mid]) / 2))
	}
	return &m
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
