package domain

import "time"

// PushType selects the re-engagement notification flavor
type PushType string

const (
	PushNewUser        PushType = "new-user"
	PushStreakRisk     PushType = "streak-risk"
	PushHighStreak     PushType = "high-streak"
	PushReEngage       PushType = "re-engage"
	PushReturningToday PushType = "returning-today"
)

// PushTask is a queued notification hand-off for the delivery subsystem.
// At most one task per (UserID, Type, DateKey); never re-queued.
type PushTask struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	DateKey     string    `json:"date_key"`
	Type        PushType  `json:"type"`
	Country     string    `json:"country"`
	Region      string    `json:"region"`
	Delivered   bool      `json:"delivered"`
	GeneratedAt time.Time `json:"generated_at"`
}
