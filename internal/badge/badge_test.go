package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questday/qotd-backend/internal/domain"
)

var now = time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)

func names(badges []*domain.Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.Name
	}
	return out
}

func TestEvaluate_AllMatchingRulesAward(t *testing.T) {
	speed := 95
	in := Input{
		UserID:               "u1",
		DateKey:              "2026-03-14",
		CompletionPct:        100,
		AccuracyPct:          92,
		HintCount:            0,
		AttemptsUsed:         2,
		RareAnswerCount:      3,
		PercentileAccuracy:   95,
		PercentileCompletion: 95,
		PercentileSpeed:      &speed,
	}

	earned := Evaluate(in, now)

	assert.ElementsMatch(t, []string{
		domain.BadgePerfectCompletion,
		domain.BadgeSniperAccuracy,
		domain.BadgeLightningFast,
		domain.BadgeTopAccuracy,
		domain.BadgeTopCompletion,
		domain.BadgeNoHints,
		domain.BadgeRareFinder,
		domain.BadgeLowAttempts,
		domain.BadgePlayedToday,
	}, names(earned))
}

func TestEvaluate_ParticipationOnly(t *testing.T) {
	in := Input{
		UserID:        "u1",
		DateKey:       "2026-03-14",
		CompletionPct: 20,
		AccuracyPct:   30,
		HintCount:     2,
		AttemptsUsed:  3,
	}

	earned := Evaluate(in, now)

	require.Len(t, earned, 1)
	assert.Equal(t, domain.BadgePlayedToday, earned[0].Name)
	assert.Equal(t, domain.TierBronze, earned[0].Tier)
}

func TestEvaluate_NilSpeedPercentileSkipsLightningFast(t *testing.T) {
	in := Input{
		UserID:    "u1",
		DateKey:   "2026-03-14",
		HintCount: 1,
	}

	earned := Evaluate(in, now)

	assert.NotContains(t, names(earned), domain.BadgeLightningFast)
}

func TestEvaluate_LightningFastIsPlatinum(t *testing.T) {
	speed := 91
	in := Input{
		UserID:          "u1",
		DateKey:         "2026-03-14",
		HintCount:       1,
		PercentileSpeed: &speed,
	}

	earned := Evaluate(in, now)

	var lightning *domain.Badge
	for _, b := range earned {
		if b.Name == domain.BadgeLightningFast {
			lightning = b
		}
	}
	require.NotNil(t, lightning)
	assert.Equal(t, domain.TierPlatinum, lightning.Tier)
	assert.Equal(t, float64(91), lightning.MetricValue)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name string
		want domain.BadgeTier
	}{
		{domain.BadgeLightningFast, domain.TierPlatinum},
		{domain.BadgeTopAccuracy, domain.TierGold},
		{domain.BadgeTopCompletion, domain.TierGold},
		{domain.BadgeSniperAccuracy, domain.TierGold},
		{domain.BadgePerfectCompletion, domain.TierGold},
		{domain.BadgeNoHints, domain.TierSilver},
		{domain.BadgeRareFinder, domain.TierSilver},
		{domain.BadgeLowAttempts, domain.TierSilver},
		{domain.BadgePlayedToday, domain.TierBronze},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.name))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "u1::Played Today", Key("u1", domain.BadgePlayedToday))
}
