package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Push defines the interface for push task queue persistence
type Push interface {
	GetByDate(ctx context.Context, dateKey string) ([]domain.PushTask, error)
	GetPending(ctx context.Context, dateKey string) ([]domain.PushTask, error)
	CreateBatch(ctx context.Context, tasks []*domain.PushTask) error
	MarkDelivered(ctx context.Context, ids []int64) (int64, error)
}
