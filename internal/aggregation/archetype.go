package aggregation

import "github.com/questday/qotd-backend/internal/domain"

// archetypeRule pairs a predicate with the label it assigns.
type archetypeRule struct {
	match func(u *UserDay) bool
	label domain.Archetype
}

// archetypeCascade is evaluated top to bottom, first match wins. A user
// matching both the hint rule and the speed rule is a Hint-lover; order
// is part of the contract, not an implementation detail.
var archetypeCascade = []archetypeRule{
	{
		label: domain.ArchetypeHintLover,
		match: func(u *UserDay) bool { return u.HintCount >= HintLoverMinHints },
	},
	{
		label: domain.ArchetypeSpeedrunner,
		match: func(u *UserDay) bool {
			return u.SolveSeconds != nil && *u.SolveSeconds < SpeedrunnerMaxSolveSecs &&
				u.AccuracyPct >= HighAccuracyPct
		},
	},
	{
		label: domain.ArchetypeSniper,
		match: func(u *UserDay) bool {
			return u.AccuracyPct >= HighAccuracyPct && u.AttemptsUsed <= SniperMaxAttempts
		},
	},
	{
		label: domain.ArchetypeStruggler,
		match: func(u *UserDay) bool { return u.CompletionPct < StrugglerMaxCompletionPct },
	},
	{
		label: domain.ArchetypeExplorer,
		match: func(u *UserDay) bool { return u.UniqueCorrect() >= ExplorerMinUniqueCorrect },
	},
}

// Classify assigns the single behavioral label for a user's day.
func Classify(u *UserDay) domain.Archetype {
	for _, rule := range archetypeCascade {
		if rule.match(u) {
			return rule.label
		}
	}
	return domain.ArchetypeBalanced
}
