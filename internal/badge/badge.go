// Package badge evaluates the daily badge rules. Unlike the archetype
// cascade, badge rules are independent: every rule that matches awards
// its badge. Tiers come from a second, ordered cascade over the badge
// name so quality ordering stays in one place.
package badge

import (
	"fmt"
	"time"

	"github.com/questday/qotd-backend/internal/domain"
)

// Rule thresholds
const (
	PerfectCompletionPct   = 100
	SniperAccuracyMinPct   = 90
	TopPercentileMin       = 90
	RareFinderMinAnswers   = 3
	LowAttemptsMax         = 2
	LowAttemptsMinComplPct = 80
)

// Input carries the per-user metrics the rules consume.
type Input struct {
	UserID               string
	DateKey              string
	CompletionPct        int
	AccuracyPct          int
	HintCount            int
	AttemptsUsed         int
	RareAnswerCount      int
	PercentileAccuracy   int
	PercentileCompletion int
	PercentileSpeed      *int
}

type rule struct {
	name        string
	match       func(in Input) bool
	metricValue func(in Input) float64
	describe    func(in Input) string
}

var rules = []rule{
	{
		name:        domain.BadgePerfectCompletion,
		match:       func(in Input) bool { return in.CompletionPct == PerfectCompletionPct },
		metricValue: func(in Input) float64 { return float64(in.CompletionPct) },
		describe:    func(in Input) string { return "Found every answer" },
	},
	{
		name:        domain.BadgeSniperAccuracy,
		match:       func(in Input) bool { return in.AccuracyPct >= SniperAccuracyMinPct },
		metricValue: func(in Input) float64 { return float64(in.AccuracyPct) },
		describe:    func(in Input) string { return fmt.Sprintf("%d%% accuracy", in.AccuracyPct) },
	},
	{
		name: domain.BadgeLightningFast,
		match: func(in Input) bool {
			return in.PercentileSpeed != nil && *in.PercentileSpeed >= TopPercentileMin
		},
		metricValue: func(in Input) float64 { return float64(*in.PercentileSpeed) },
		describe: func(in Input) string {
			return fmt.Sprintf("Faster than %d%% of players", *in.PercentileSpeed)
		},
	},
	{
		name:        domain.BadgeTopAccuracy,
		match:       func(in Input) bool { return in.PercentileAccuracy >= TopPercentileMin },
		metricValue: func(in Input) float64 { return float64(in.PercentileAccuracy) },
		describe:    func(in Input) string { return "Top 10% accuracy today" },
	},
	{
		name:        domain.BadgeTopCompletion,
		match:       func(in Input) bool { return in.PercentileCompletion >= TopPercentileMin },
		metricValue: func(in Input) float64 { return float64(in.PercentileCompletion) },
		describe:    func(in Input) string { return "Top 10% completion today" },
	},
	{
		name:        domain.BadgeNoHints,
		match:       func(in Input) bool { return in.HintCount == 0 },
		metricValue: func(in Input) float64 { return 0 },
		describe:    func(in Input) string { return "Solved without hints" },
	},
	{
		name:        domain.BadgeRareFinder,
		match:       func(in Input) bool { return in.RareAnswerCount >= RareFinderMinAnswers },
		metricValue: func(in Input) float64 { return float64(in.RareAnswerCount) },
		describe:    func(in Input) string { return fmt.Sprintf("Found %d rare answers", in.RareAnswerCount) },
	},
	{
		name: domain.BadgeLowAttempts,
		match: func(in Input) bool {
			return in.AttemptsUsed <= LowAttemptsMax && in.CompletionPct >= LowAttemptsMinComplPct
		},
		metricValue: func(in Input) float64 { return float64(in.AttemptsUsed) },
		describe:    func(in Input) string { return fmt.Sprintf("%d%% complete in %d attempts", in.CompletionPct, in.AttemptsUsed) },
	},
	{
		name:        domain.BadgePlayedToday,
		match:       func(in Input) bool { return true },
		metricValue: func(in Input) float64 { return 1 },
		describe:    func(in Input) string { return "Played today" },
	},
}

// tierRule pairs a name predicate with a tier, evaluated top to bottom.
type tierRule struct {
	match func(name string) bool
	tier  domain.BadgeTier
}

var tierCascade = []tierRule{
	{
		tier:  domain.TierPlatinum,
		match: func(name string) bool { return name == domain.BadgeLightningFast },
	},
	{
		tier: domain.TierGold,
		match: func(name string) bool {
			switch name {
			case domain.BadgeTopAccuracy, domain.BadgeTopCompletion,
				domain.BadgeSniperAccuracy, domain.BadgePerfectCompletion:
				return true
			}
			return false
		},
	},
	{
		tier: domain.TierSilver,
		match: func(name string) bool {
			switch name {
			case domain.BadgeNoHints, domain.BadgeRareFinder, domain.BadgeLowAttempts:
				return true
			}
			return false
		},
	},
}

// TierFor returns the tier for a badge name, Bronze by default.
func TierFor(name string) domain.BadgeTier {
	for _, t := range tierCascade {
		if t.match(name) {
			return t.tier
		}
	}
	return domain.TierBronze
}

// Evaluate returns every badge the user earned for the day, in rule
// order. De-duplication against already-persisted badges is the
// caller's job; Evaluate itself is pure.
func Evaluate(in Input, now time.Time) []*domain.Badge {
	var earned []*domain.Badge
	for _, r := range rules {
		if !r.match(in) {
			continue
		}
		earned = append(earned, &domain.Badge{
			UserID:      in.UserID,
			DateKey:     in.DateKey,
			Name:        r.name,
			Tier:        TierFor(r.name),
			MetricValue: r.metricValue(in),
			Description: r.describe(in),
			GeneratedAt: now,
		})
	}
	return earned
}

// Key is the idempotency key a badge is de-duplicated on within a day.
func Key(userID, name string) string {
	return userID + "::" + name
}
