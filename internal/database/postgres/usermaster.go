package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

const masterColumns = `
	user_id, first_seen_date, last_seen_date, last_played_date,
	current_streak, longest_streak, total_days_played, country_code,
	region, updated_at`

// UserMasterRepository implements persistent user record storage for PostgreSQL
type UserMasterRepository struct {
	db *pgxpool.Pool
}

// NewUserMasterRepository creates a new UserMasterRepository
func NewUserMasterRepository(db *pgxpool.Pool) repository.UserMaster {
	return &UserMasterRepository{db: db}
}

// GetAll retrieves every user master record
func (r *UserMasterRepository) GetAll(ctx context.Context) ([]domain.UserMaster, error) {
	query := `SELECT ` + masterColumns + ` FROM user_masters`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user masters: %w", err)
	}
	defer rows.Close()

	var masters []domain.UserMaster
	for rows.Next() {
		m, err := scanMaster(rows)
		if err != nil {
			return nil, err
		}
		masters = append(masters, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user masters: %w", err)
	}

	return masters, nil
}

// GetByUserID retrieves one user master record
func (r *UserMasterRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserMaster, error) {
	query := `SELECT ` + masterColumns + ` FROM user_masters WHERE user_id = $1`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user master: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to read user master: %w", err)
		}
		return nil, domain.ErrUserNotFound
	}

	m, err := scanMaster(rows)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateBatch inserts new user master records
func (r *UserMasterRepository) CreateBatch(ctx context.Context, masters []*domain.UserMaster) error {
	if len(masters) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_masters
			(user_id, first_seen_date, last_seen_date, last_played_date,
			 current_streak, longest_streak, total_days_played, country_code,
			 region, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	batch := &pgx.Batch{}
	for _, m := range masters {
		batch.Queue(query,
			m.UserID, m.FirstSeenDate, m.LastSeenDate, m.LastPlayedDate,
			m.CurrentStreak, m.LongestStreak, m.TotalDaysPlayed, m.CountryCode,
			m.Region, m.UpdatedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range masters {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert user master: %w", err)
		}
	}

	return nil
}

// UpdateBatch updates existing user master records by user ID
func (r *UserMasterRepository) UpdateBatch(ctx context.Context, masters []*domain.UserMaster) error {
	if len(masters) == 0 {
		return nil
	}

	query := `
		UPDATE user_masters
		SET last_seen_date = $2, last_played_date = $3, current_streak = $4,
		    longest_streak = $5, total_days_played = $6, country_code = $7,
		    region = $8, updated_at = $9
		WHERE user_id = $1
	`

	batch := &pgx.Batch{}
	for _, m := range masters {
		batch.Queue(query,
			m.UserID, m.LastSeenDate, m.LastPlayedDate, m.CurrentStreak,
			m.LongestStreak, m.TotalDaysPlayed, m.CountryCode, m.Region,
			m.UpdatedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range masters {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update user master: %w", err)
		}
	}

	return nil
}

func scanMaster(rows pgx.Rows) (domain.UserMaster, error) {
	var m domain.UserMaster
	if err := rows.Scan(
		&m.UserID, &m.FirstSeenDate, &m.LastSeenDate, &m.LastPlayedDate,
		&m.CurrentStreak, &m.LongestStreak, &m.TotalDaysPlayed, &m.CountryCode,
		&m.Region, &m.UpdatedAt,
	); err != nil {
		return domain.UserMaster{}, fmt.Errorf("failed to scan user master: %w", err)
	}
	return m, nil
}
