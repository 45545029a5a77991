// Package cohort buckets users by first-seen date and measures how many
// have returned by the D1, D3, and D7 marks relative to a snapshot date.
package cohort

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
)

// Cumulative window widths. D1 is an exact-day check; D3 and D7 accept
// any return on or after snapshot minus the width.
const (
	windowD3 = 2
	windowD7 = 6
)

// Build groups the master records by FirstSeenDate and computes return
// counts and retention ratios against snapshotDate. Cohorts come back
// sorted by cohort date. Empty cohorts cannot occur by construction, but
// ratios are still zero-guarded.
func Build(masters []domain.UserMaster, snapshotDate string, now time.Time) ([]*domain.Cohort, error) {
	d3Floor, err := datekey.OffsetDays(snapshotDate, -windowD3)
	if err != nil {
		return nil, fmt.Errorf("failed to derive D3 window: %w", err)
	}
	d7Floor, err := datekey.OffsetDays(snapshotDate, -windowD7)
	if err != nil {
		return nil, fmt.Errorf("failed to derive D7 window: %w", err)
	}

	byDate := make(map[string]*domain.Cohort)
	for i := range masters {
		m := &masters[i]
		if m.FirstSeenDate == "" {
			continue
		}

		c, ok := byDate[m.FirstSeenDate]
		if !ok {
			c = &domain.Cohort{
				CohortDate:   m.FirstSeenDate,
				SnapshotDate: snapshotDate,
				GeneratedAt:  now,
			}
			byDate[m.FirstSeenDate] = c
		}

		c.Size++
		if m.LastPlayedDate == "" {
			continue
		}
		// Date keys compare chronologically as strings.
		if m.LastPlayedDate == snapshotDate {
			c.ReturnedD1++
		}
		if m.LastPlayedDate >= d3Floor {
			c.ReturnedD3++
		}
		if m.LastPlayedDate >= d7Floor {
			c.ReturnedD7++
		}
	}

	cohorts := make([]*domain.Cohort, 0, len(byDate))
	for _, c := range byDate {
		c.RetentionD1 = ratio(c.ReturnedD1, c.Size)
		c.RetentionD3 = ratio(c.ReturnedD3, c.Size)
		c.RetentionD7 = ratio(c.ReturnedD7, c.Size)
		cohorts = append(cohorts, c)
	}
	sort.Slice(cohorts, func(i, j int) bool {
		return cohorts[i].CohortDate < cohorts[j].CohortDate
	})
	return cohorts, nil
}

func ratio(returned, size int) float64 {
	if size == 0 {
		return 0
	}
	return math.Round(float64(returned)/float64(size)*1000) / 1000
}
