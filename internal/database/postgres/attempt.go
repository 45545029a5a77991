package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

// AttemptRepository implements the attempt event log for PostgreSQL
type AttemptRepository struct {
	db *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository
func NewAttemptRepository(db *pgxpool.Pool) repository.Attempt {
	return &AttemptRepository{db: db}
}

// InsertEvent appends one attempt event
func (r *AttemptRepository) InsertEvent(ctx context.Context, event *domain.AttemptEvent) error {
	query := `
		INSERT INTO attempt_events
			(user_id, date_key, window_id, attempt_index, result,
			 answers_json, correct_json, incorrect_json, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		event.UserID,
		event.DateKey,
		event.WindowID,
		event.AttemptIndex,
		string(event.Result),
		event.AnswersJSON,
		event.CorrectJSON,
		event.IncorrectJSON,
		event.Country,
		event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to insert attempt event: %w", err)
	}

	return nil
}

// GetEventsByDate retrieves all attempt events for a date key
func (r *AttemptRepository) GetEventsByDate(ctx context.Context, dateKey string, limit int) ([]domain.AttemptEvent, error) {
	query := `
		SELECT id, user_id, date_key, window_id, attempt_index, result,
		       answers_json, correct_json, incorrect_json, country, created_at
		FROM attempt_events
		WHERE date_key = $1
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, dateKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt events: %w", err)
	}
	defer rows.Close()

	var events []domain.AttemptEvent
	for rows.Next() {
		var e domain.AttemptEvent
		var result string
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.DateKey, &e.WindowID, &e.AttemptIndex, &result,
			&e.AnswersJSON, &e.CorrectJSON, &e.IncorrectJSON, &e.Country, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt event: %w", err)
		}
		e.Result = domain.AttemptResult(result)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempt events: %w", err)
	}

	return events, nil
}
