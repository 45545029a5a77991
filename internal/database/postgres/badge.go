package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

// BadgeRepository implements badge persistence for PostgreSQL
type BadgeRepository struct {
	db *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository
func NewBadgeRepository(db *pgxpool.Pool) repository.Badge {
	return &BadgeRepository{db: db}
}

// GetByDate retrieves all badges awarded for a date key
func (r *BadgeRepository) GetByDate(ctx context.Context, dateKey string) ([]domain.Badge, error) {
	query := `
		SELECT id, user_id, date_key, name, tier, metric_value, description, generated_at
		FROM badges
		WHERE date_key = $1
	`

	rows, err := r.db.Query(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges: %w", err)
	}
	defer rows.Close()

	return scanBadges(rows)
}

// GetByUser retrieves a user's badge history, newest first
func (r *BadgeRepository) GetByUser(ctx context.Context, userID string, limit int) ([]domain.Badge, error) {
	query := `
		SELECT id, user_id, date_key, name, tier, metric_value, description, generated_at
		FROM badges
		WHERE user_id = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query user badges: %w", err)
	}
	defer rows.Close()

	return scanBadges(rows)
}

// CreateBatch inserts badges, filling in generated IDs for back-linking
func (r *BadgeRepository) CreateBatch(ctx context.Context, badges []*domain.Badge) error {
	if len(badges) == 0 {
		return nil
	}

	query := `
		INSERT INTO badges
			(user_id, date_key, name, tier, metric_value, description, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, b := range badges {
		batch.Queue(query,
			b.UserID, b.DateKey, b.Name, string(b.Tier), b.MetricValue,
			b.Description, b.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, b := range badges {
		if err := br.QueryRow().Scan(&b.ID); err != nil {
			return fmt.Errorf("failed to insert badge %q for user %s: %w", b.Name, b.UserID, err)
		}
	}
	return nil
}

func scanBadges(rows pgx.Rows) ([]domain.Badge, error) {
	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		var tier string
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.DateKey, &b.Name, &tier, &b.MetricValue,
			&b.Description, &b.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		b.Tier = domain.BadgeTier(tier)
		badges = append(badges, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}
	return badges, nil
}
