package domain

import "time"

// BadgeTier orders badge quality from participation to elite
type BadgeTier string

const (
	TierBronze   BadgeTier = "Bronze"
	TierSilver   BadgeTier = "Silver"
	TierGold     BadgeTier = "Gold"
	TierPlatinum BadgeTier = "Platinum"
)

// Badge names awarded by the daily badge engine
const (
	BadgePerfectCompletion  = "Perfect Completion"
	BadgeSniperAccuracy     = "Sniper Accuracy"
	BadgeLightningFast      = "Lightning Fast"
	BadgeTopAccuracy        = "Top 10% Accuracy"
	BadgeTopCompletion      = "Top 10% Completion"
	BadgeNoHints            = "No Hints Used"
	BadgeRareFinder         = "Rare Finder"
	BadgeLowAttempts        = "Low Attempts, High Impact"
	BadgePlayedToday        = "Played Today"
)

// Badge is one award. Append-only, de-duplicated on
// (UserID, Name, DateKey); never updated once created.
type Badge struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	DateKey     string    `json:"date_key"`
	Name        string    `json:"name"`
	Tier        BadgeTier `json:"tier"`
	MetricValue float64   `json:"metric_value"`
	Description string    `json:"description,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
