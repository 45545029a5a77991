package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

// AggregateRepository implements the day-level rollup tables for PostgreSQL
type AggregateRepository struct {
	db *pgxpool.Pool
}

// NewAggregateRepository creates a new AggregateRepository
func NewAggregateRepository(db *pgxpool.Pool) repository.Aggregate {
	return &AggregateRepository{db: db}
}

// GetAggregatesByDate retrieves the global rollup rows for a date key.
// With upsert discipline there is at most one, but the engine verifies.
func (r *AggregateRepository) GetAggregatesByDate(ctx context.Context, dateKey string) ([]domain.DailyAggregate, error) {
	query := `
		SELECT id, date_key, total_players, total_attempts, total_hints,
		       distinct_answers, distinct_countries, diversity_score,
		       avg_accuracy, avg_completion, avg_hints, median_pace_seconds,
		       generated_at
		FROM daily_aggregates
		WHERE date_key = $1
	`

	rows, err := r.db.Query(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []domain.DailyAggregate
	for rows.Next() {
		var a domain.DailyAggregate
		if err := rows.Scan(
			&a.ID, &a.DateKey, &a.TotalPlayers, &a.TotalAttempts, &a.TotalHints,
			&a.DistinctAnswers, &a.DistinctCountries, &a.DiversityScore,
			&a.AvgAccuracy, &a.AvgCompletion, &a.AvgHints, &a.MedianPaceSeconds,
			&a.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily aggregates: %w", err)
	}
	return aggs, nil
}

// CreateAggregateBatch inserts global rollup rows
func (r *AggregateRepository) CreateAggregateBatch(ctx context.Context, aggs []*domain.DailyAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_aggregates
			(date_key, total_players, total_attempts, total_hints,
			 distinct_answers, distinct_countries, diversity_score,
			 avg_accuracy, avg_completion, avg_hints, median_pace_seconds,
			 generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, a := range aggs {
		batch.Queue(query,
			a.DateKey, a.TotalPlayers, a.TotalAttempts, a.TotalHints,
			a.DistinctAnswers, a.DistinctCountries, a.DiversityScore,
			a.AvgAccuracy, a.AvgCompletion, a.AvgHints, a.MedianPaceSeconds,
			a.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, a := range aggs {
		if err := br.QueryRow().Scan(&a.ID); err != nil {
			return fmt.Errorf("failed to insert daily aggregate %s: %w", a.DateKey, err)
		}
	}
	return nil
}

// UpdateAggregateBatch updates existing global rollup rows by ID
func (r *AggregateRepository) UpdateAggregateBatch(ctx context.Context, aggs []*domain.DailyAggregate) error {
	if len(aggs) == 0 {
		return nil
	}

	query := `
		UPDATE daily_aggregates
		SET total_players = $2, total_attempts = $3, total_hints = $4,
		    distinct_answers = $5, distinct_countries = $6, diversity_score = $7,
		    avg_accuracy = $8, avg_completion = $9, avg_hints = $10,
		    median_pace_seconds = $11, generated_at = $12
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, a := range aggs {
		batch.Queue(query,
			a.ID, a.TotalPlayers, a.TotalAttempts, a.TotalHints,
			a.DistinctAnswers, a.DistinctCountries, a.DiversityScore,
			a.AvgAccuracy, a.AvgCompletion, a.AvgHints,
			a.MedianPaceSeconds, a.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range aggs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update daily aggregate: %w", err)
		}
	}
	return nil
}

// GetRegionStatsByDate retrieves per-region rollups for a date key
func (r *AggregateRepository) GetRegionStatsByDate(ctx context.Context, dateKey string) ([]domain.RegionStat, error) {
	query := `
		SELECT id, date_key, region, players, avg_accuracy, avg_completion,
		       avg_hints, avg_solve_seconds, share_of_players, generated_at
		FROM region_stats
		WHERE date_key = $1
	`

	rows, err := r.db.Query(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query region stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.RegionStat
	for rows.Next() {
		var s domain.RegionStat
		if err := rows.Scan(
			&s.ID, &s.DateKey, &s.Region, &s.Players, &s.AvgAccuracy,
			&s.AvgCompletion, &s.AvgHints, &s.AvgSolveSeconds,
			&s.ShareOfPlayers, &s.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan region stat: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate region stats: %w", err)
	}
	return stats, nil
}

// CreateRegionStatBatch inserts region rollup rows
func (r *AggregateRepository) CreateRegionStatBatch(ctx context.Context, stats []*domain.RegionStat) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		INSERT INTO region_stats
			(date_key, region, players, avg_accuracy, avg_completion,
			 avg_hints, avg_solve_seconds, share_of_players, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.DateKey, s.Region, s.Players, s.AvgAccuracy, s.AvgCompletion,
			s.AvgHints, s.AvgSolveSeconds, s.ShareOfPlayers, s.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, s := range stats {
		if err := br.QueryRow().Scan(&s.ID); err != nil {
			return fmt.Errorf("failed to insert region stat %s: %w", s.Region, err)
		}
	}
	return nil
}

// UpdateRegionStatBatch updates existing region rollup rows by ID
func (r *AggregateRepository) UpdateRegionStatBatch(ctx context.Context, stats []*domain.RegionStat) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		UPDATE region_stats
		SET players = $2, avg_accuracy = $3, avg_completion = $4,
		    avg_hints = $5, avg_solve_seconds = $6, share_of_players = $7,
		    generated_at = $8
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.ID, s.Players, s.AvgAccuracy, s.AvgCompletion,
			s.AvgHints, s.AvgSolveSeconds, s.ShareOfPlayers, s.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range stats {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update region stat: %w", err)
		}
	}
	return nil
}

// GetAnswerStatsByDate retrieves the answer frequency table for a date key
func (r *AggregateRepository) GetAnswerStatsByDate(ctx context.Context, dateKey string) ([]domain.AnswerStat, error) {
	query := `
		SELECT id, date_key, answer, player_count, percent_of_players, rank,
		       is_rare, first_mention_user, first_mention_time, countries,
		       regions, generated_at
		FROM answer_stats
		WHERE date_key = $1
	`

	rows, err := r.db.Query(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query answer stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.AnswerStat
	for rows.Next() {
		var s domain.AnswerStat
		if err := rows.Scan(
			&s.ID, &s.DateKey, &s.Answer, &s.PlayerCount, &s.PercentOfPlayers,
			&s.Rank, &s.IsRare, &s.FirstMentionUser, &s.FirstMentionTime,
			&s.Countries, &s.Regions, &s.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer stat: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate answer stats: %w", err)
	}
	return stats, nil
}

// CreateAnswerStatBatch inserts answer frequency rows
func (r *AggregateRepository) CreateAnswerStatBatch(ctx context.Context, stats []*domain.AnswerStat) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		INSERT INTO answer_stats
			(date_key, answer, player_count, percent_of_players, rank,
			 is_rare, first_mention_user, first_mention_time, countries,
			 regions, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.DateKey, s.Answer, s.PlayerCount, s.PercentOfPlayers, s.Rank,
			s.IsRare, s.FirstMentionUser, s.FirstMentionTime, s.Countries,
			s.Regions, s.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, s := range stats {
		if err := br.QueryRow().Scan(&s.ID); err != nil {
			return fmt.Errorf("failed to insert answer stat %q: %w", s.Answer, err)
		}
	}
	return nil
}

// UpdateAnswerStatBatch updates existing answer frequency rows by ID
func (r *AggregateRepository) UpdateAnswerStatBatch(ctx context.Context, stats []*domain.AnswerStat) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		UPDATE answer_stats
		SET player_count = $2, percent_of_players = $3, rank = $4, is_rare = $5,
		    first_mention_user = $6, first_mention_time = $7, countries = $8,
		    regions = $9, generated_at = $10
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.ID, s.PlayerCount, s.PercentOfPlayers, s.Rank, s.IsRare,
			s.FirstMentionUser, s.FirstMentionTime, s.Countries, s.Regions,
			s.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range stats {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update answer stat: %w", err)
		}
	}
	return nil
}
