package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Cohort defines the interface for cohort snapshot persistence
type Cohort interface {
	GetBySnapshot(ctx context.Context, snapshotDate string) ([]domain.Cohort, error)
	CreateBatch(ctx context.Context, cohorts []*domain.Cohort) error
	UpdateBatch(ctx context.Context, cohorts []*domain.Cohort) error
}
