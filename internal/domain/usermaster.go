package domain

import "time"

// UserMaster is the persistent per-user record carried across days.
// Created on first appearance, mutated by the streak tracker once per
// played day, never deleted.
type UserMaster struct {
	UserID          string    `json:"user_id"`
	FirstSeenDate   string    `json:"first_seen_date"`
	LastSeenDate    string    `json:"last_seen_date"`
	LastPlayedDate  string    `json:"last_played_date"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	TotalDaysPlayed int       `json:"total_days_played"`
	CountryCode     string    `json:"country_code"`
	Region          string    `json:"region"`
	UpdatedAt       time.Time `json:"updated_at"`
}
