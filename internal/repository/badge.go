package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Badge defines the interface for badge persistence. Badges are append-only;
// CreateBatch fills in the generated IDs so profiles can back-link them.
type Badge interface {
	GetByDate(ctx context.Context, dateKey string) ([]domain.Badge, error)
	GetByUser(ctx context.Context, userID string, limit int) ([]domain.Badge, error)
	CreateBatch(ctx context.Context, badges []*domain.Badge) error
}
