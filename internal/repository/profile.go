package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Profile defines the interface for user daily profile persistence.
// Rows are upserted by the aggregation run on (user_id, date_key).
type Profile interface {
	GetByDate(ctx context.Context, dateKey string) ([]domain.UserDailyProfile, error)
	GetByUserAndDate(ctx context.Context, userID, dateKey string) (*domain.UserDailyProfile, error)
	CreateBatch(ctx context.Context, profiles []*domain.UserDailyProfile) error
	UpdateBatch(ctx context.Context, profiles []*domain.UserDailyProfile) error
}
