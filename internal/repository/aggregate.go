package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Aggregate defines the interface for the day-level rollup tables:
// the global aggregate, per-region stats, and the answer frequency table.
type Aggregate interface {
	GetAggregatesByDate(ctx context.Context, dateKey string) ([]domain.DailyAggregate, error)
	CreateAggregateBatch(ctx context.Context, rows []*domain.DailyAggregate) error
	UpdateAggregateBatch(ctx context.Context, rows []*domain.DailyAggregate) error

	GetRegionStatsByDate(ctx context.Context, dateKey string) ([]domain.RegionStat, error)
	CreateRegionStatBatch(ctx context.Context, rows []*domain.RegionStat) error
	UpdateRegionStatBatch(ctx context.Context, rows []*domain.RegionStat) error

	GetAnswerStatsByDate(ctx context.Context, dateKey string) ([]domain.AnswerStat, error)
	CreateAnswerStatBatch(ctx context.Context, rows []*domain.AnswerStat) error
	UpdateAnswerStatBatch(ctx context.Context, rows []*domain.AnswerStat) error
}
