package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

// PushRepository implements push task queue persistence for PostgreSQL
type PushRepository struct {
	db *pgxpool.Pool
}

// NewPushRepository creates a new PushRepository
func NewPushRepository(db *pgxpool.Pool) repository.Push {
	return &PushRepository{db: db}
}

// GetByDate retrieves all push tasks queued for a date key
func (r *PushRepository) GetByDate(ctx context.Context, dateKey string) ([]domain.PushTask, error) {
	return r.getTasks(ctx, `WHERE date_key = $1`, dateKey)
}

// GetPending retrieves undelivered push tasks for a date key
func (r *PushRepository) GetPending(ctx context.Context, dateKey string) ([]domain.PushTask, error) {
	return r.getTasks(ctx, `WHERE date_key = $1 AND delivered = FALSE`, dateKey)
}

func (r *PushRepository) getTasks(ctx context.Context, where string, args ...interface{}) ([]domain.PushTask, error) {
	query := `
		SELECT id, user_id, date_key, type, country, region, delivered, generated_at
		FROM push_tasks ` + where

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query push tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.PushTask
	for rows.Next() {
		var t domain.PushTask
		var pushType string
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.DateKey, &pushType, &t.Country, &t.Region,
			&t.Delivered, &t.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan push task: %w", err)
		}
		t.Type = domain.PushType(pushType)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate push tasks: %w", err)
	}
	return tasks, nil
}

// CreateBatch inserts push tasks
func (r *PushRepository) CreateBatch(ctx context.Context, tasks []*domain.PushTask) error {
	if len(tasks) == 0 {
		return nil
	}

	query := `
		INSERT INTO push_tasks
			(user_id, date_key, type, country, region, delivered, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, t := range tasks {
		batch.Queue(query,
			t.UserID, t.DateKey, string(t.Type), t.Country, t.Region,
			t.Delivered, t.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, t := range tasks {
		if err := br.QueryRow().Scan(&t.ID); err != nil {
			return fmt.Errorf("failed to insert push task for user %s: %w", t.UserID, err)
		}
	}
	return nil
}

// MarkDelivered flags push tasks as delivered, returning the affected count
func (r *PushRepository) MarkDelivered(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Exec(ctx, `UPDATE push_tasks SET delivered = TRUE WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark push tasks delivered: %w", err)
	}
	return tag.RowsAffected(), nil
}
