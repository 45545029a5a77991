package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// UserMaster defines the interface for the persistent per-user records
type UserMaster interface {
	// GetAll returns every master record. The table holds one row per
	// ever-seen user; the engine snapshots it once per run.
	GetAll(ctx context.Context) ([]domain.UserMaster, error)
	GetByUserID(ctx context.Context, userID string) (*domain.UserMaster, error)
	CreateBatch(ctx context.Context, masters []*domain.UserMaster) error
	UpdateBatch(ctx context.Context, masters []*domain.UserMaster) error
}
