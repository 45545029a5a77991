package repository

import (
	"context"

	"github.com/questday/qotd-backend/internal/domain"
)

// Attempt defines the interface for the append-only attempt event log
type Attempt interface {
	// InsertEvent appends one attempt event. Events are never mutated.
	InsertEvent(ctx context.Context, event *domain.AttemptEvent) error

	// GetEventsByDate returns all events for a date key, unordered,
	// bounded by limit. Callers sort by CreatedAt where order matters.
	GetEventsByDate(ctx context.Context, dateKey string, limit int) ([]domain.AttemptEvent, error)
}
