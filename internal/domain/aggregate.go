package domain

import "time"

// DailyAggregate is the global rollup for one game day. Natural key: DateKey.
type DailyAggregate struct {
	ID                int64     `json:"id"`
	DateKey           string    `json:"date_key"`
	TotalPlayers      int       `json:"total_players"`
	TotalAttempts     int       `json:"total_attempts"`
	TotalHints        int       `json:"total_hints"`
	DistinctAnswers   int       `json:"distinct_answers"`
	DistinctCountries int       `json:"distinct_countries"`
	DiversityScore    float64   `json:"diversity_score"`
	AvgAccuracy       float64   `json:"avg_accuracy"`
	AvgCompletion     float64   `json:"avg_completion"`
	AvgHints          float64   `json:"avg_hints"`
	MedianPaceSeconds *int      `json:"median_pace_seconds,omitempty"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// RegionStat is the per-region rollup for one game day.
// Natural key: (DateKey, Region).
type RegionStat struct {
	ID              int64     `json:"id"`
	DateKey         string    `json:"date_key"`
	Region          string    `json:"region"`
	Players         int       `json:"players"`
	AvgAccuracy     float64   `json:"avg_accuracy"`
	AvgCompletion   float64   `json:"avg_completion"`
	AvgHints        float64   `json:"avg_hints"`
	AvgSolveSeconds *float64  `json:"avg_solve_seconds,omitempty"`
	ShareOfPlayers  float64   `json:"share_of_players"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// AnswerStat summarizes one distinct normalized answer for one game day.
// Natural key: (DateKey, Answer). Rank is 1-based by descending
// PlayerCount, ties broken by earlier first mention.
type AnswerStat struct {
	ID               int64     `json:"id"`
	DateKey          string    `json:"date_key"`
	Answer           string    `json:"answer"`
	PlayerCount      int       `json:"player_count"`
	PercentOfPlayers float64   `json:"percent_of_players"`
	Rank             int       `json:"rank"`
	IsRare           bool      `json:"is_rare"`
	FirstMentionUser string    `json:"first_mention_user"`
	FirstMentionTime time.Time `json:"first_mention_time"`
	Countries        []string  `json:"countries"`
	Regions          []string  `json:"regions"`
	GeneratedAt      time.Time `json:"generated_at"`
}
