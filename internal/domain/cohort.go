package domain

import "time"

// Cohort captures retention for the set of users first seen on CohortDate,
// measured against SnapshotDate. Natural key: (CohortDate, SnapshotDate).
// D1 counts exact-day returns; D3/D7 are cumulative windows.
type Cohort struct {
	ID           int64     `json:"id"`
	CohortDate   string    `json:"cohort_date"`
	SnapshotDate string    `json:"snapshot_date"`
	Size         int       `json:"size"`
	ReturnedD1   int       `json:"returned_d1"`
	ReturnedD3   int       `json:"returned_d3"`
	ReturnedD7   int       `json:"returned_d7"`
	RetentionD1  float64   `json:"retention_d1"`
	RetentionD3  float64   `json:"retention_d3"`
	RetentionD7  float64   `json:"retention_d7"`
	GeneratedAt  time.Time `json:"generated_at"`
}
