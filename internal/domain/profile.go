package domain

import "time"

// Archetype is the single behavioral label assigned to a user's day
type Archetype string

const (
	ArchetypeHintLover   Archetype = "Hint-lover"
	ArchetypeSpeedrunner Archetype = "Speedrunner"
	ArchetypeSniper      Archetype = "Sniper"
	ArchetypeStruggler   Archetype = "Struggler"
	ArchetypeExplorer    Archetype = "Explorer"
	ArchetypeBalanced    Archetype = "Balanced"
)

// UserDailyProfile holds the derived per-user metrics for one game day.
// Natural key: (UserID, DateKey). Percentile fields are nil when the
// population was too small to rank fairly.
type UserDailyProfile struct {
	ID                   int64     `json:"id"`
	UserID               string    `json:"user_id"`
	DateKey              string    `json:"date_key"`
	Country              string    `json:"country"`
	Region               string    `json:"region"`
	AttemptsUsed         int       `json:"attempts_used"`
	HintCount            int       `json:"hint_count"`
	UniqueSubmitted      int       `json:"unique_submitted"`
	UniqueCorrect        int       `json:"unique_correct"`
	CompletionPct        int       `json:"completion_pct"`
	AccuracyPct          int       `json:"accuracy_pct"`
	SolveSeconds         *int      `json:"solve_seconds,omitempty"`
	RareAnswerCount      int       `json:"rare_answer_count"`
	Archetype            Archetype `json:"archetype"`
	PercentileAccuracy   int       `json:"percentile_accuracy"`
	PercentileCompletion int       `json:"percentile_completion"`
	PercentileSpeed      *int      `json:"percentile_speed,omitempty"`
	StreakContinues      bool      `json:"streak_continues"`
	FirstSolveToday      bool      `json:"first_solve_today"`
	BadgeIDs             []int64   `json:"badge_ids,omitempty"`
	GeneratedAt          time.Time `json:"generated_at"`
}
