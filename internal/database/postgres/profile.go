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

const profileColumns = `
	id, user_id, date_key, country, region, attempts_used, hint_count,
	unique_submitted, unique_correct, completion_pct, accuracy_pct,
	solve_seconds, rare_answer_count, archetype, percentile_accuracy,
	percentile_completion, percentile_speed, streak_continues,
	first_solve_today, badge_ids, generated_at`

// ProfileRepository implements user daily profile persistence for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) repository.Profile {
	return &ProfileRepository{db: db}
}

// GetByDate retrieves all profiles for a date key
func (r *ProfileRepository) GetByDate(ctx context.Context, dateKey string) ([]domain.UserDailyProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_daily_profiles WHERE date_key = $1`

	rows, err := r.db.Query(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// GetByUserAndDate retrieves a single user's profile for a date key
func (r *ProfileRepository) GetByUserAndDate(ctx context.Context, userID, dateKey string) (*domain.UserDailyProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_daily_profiles WHERE user_id = $1 AND date_key = $2`

	rows, err := r.db.Query(ctx, query, userID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	defer rows.Close()

	profiles, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &profiles[0], nil
}

// CreateBatch inserts profiles in one round trip, filling in generated IDs
func (r *ProfileRepository) CreateBatch(ctx context.Context, profiles []*domain.UserDailyProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_daily_profiles
			(user_id, date_key, country, region, attempts_used, hint_count,
			 unique_submitted, unique_correct, completion_pct, accuracy_pct,
			 solve_seconds, rare_answer_count, archetype, percentile_accuracy,
			 percentile_completion, percentile_speed, streak_continues,
			 first_solve_today, badge_ids, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, p := range profiles {
		batch.Queue(query,
			p.UserID, p.DateKey, p.Country, p.Region, p.AttemptsUsed, p.HintCount,
			p.UniqueSubmitted, p.UniqueCorrect, p.CompletionPct, p.AccuracyPct,
			p.SolveSeconds, p.RareAnswerCount, string(p.Archetype), p.PercentileAccuracy,
			p.PercentileCompletion, p.PercentileSpeed, p.StreakContinues,
			p.FirstSolveToday, p.BadgeIDs, p.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, p := range profiles {
		if err := br.QueryRow().Scan(&p.ID); err != nil {
			return fmt.Errorf("failed to insert profile for user %s: %w", p.UserID, err)
		}
	}

	return nil
}

// UpdateBatch updates existing profiles by ID in one round trip
func (r *ProfileRepository) UpdateBatch(ctx context.Context, profiles []*domain.UserDailyProfile) error {
	if len(profiles) == 0 {
		return nil
	}

	query := `
		UPDATE user_daily_profiles
		SET country = $2, region = $3, attempts_used = $4, hint_count = $5,
		    unique_submitted = $6, unique_correct = $7, completion_pct = $8,
		    accuracy_pct = $9, solve_seconds = $10, rare_answer_count = $11,
		    archetype = $12, percentile_accuracy = $13, percentile_completion = $14,
		    percentile_speed = $15, streak_continues = $16, first_solve_today = $17,
		    badge_ids = $18, generated_at = $19
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, p := range profiles {
		batch.Queue(query,
			p.ID, p.Country, p.Region, p.AttemptsUsed, p.HintCount,
			p.UniqueSubmitted, p.UniqueCorrect, p.CompletionPct,
			p.AccuracyPct, p.SolveSeconds, p.RareAnswerCount,
			string(p.Archetype), p.PercentileAccuracy, p.PercentileCompletion,
			p.PercentileSpeed, p.StreakContinues, p.FirstSolveToday,
			p.BadgeIDs, p.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range profiles {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return nil
}

func scanProfiles(rows pgx.Rows) ([]domain.UserDailyProfile, error) {
	var profiles []domain.UserDailyProfile
	for rows.Next() {
		var p domain.UserDailyProfile
		var archetype string
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.DateKey, &p.Country, &p.Region, &p.AttemptsUsed,
			&p.HintCount, &p.UniqueSubmitted, &p.UniqueCorrect, &p.CompletionPct,
			&p.AccuracyPct, &p.SolveSeconds, &p.RareAnswerCount, &archetype,
			&p.PercentileAccuracy, &p.PercentileCompletion, &p.PercentileSpeed,
			&p.StreakContinues, &p.FirstSolveToday, &p.BadgeIDs, &p.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Archetype = domain.Archetype(archetype)
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}
