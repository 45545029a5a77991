package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/repository"
)

// CohortRepository implements cohort snapshot persistence for PostgreSQL
type CohortRepository struct {
	db *pgxpool.Pool
}

// NewCohortRepository creates a new CohortRepository
func NewCohortRepository(db *pgxpool.Pool) repository.Cohort {
	return &CohortRepository{db: db}
}

// GetBySnapshot retrieves cohort rows for a snapshot date
func (r *CohortRepository) GetBySnapshot(ctx context.Context, snapshotDate string) ([]domain.Cohort, error) {
	query := `
		SELECT id, cohort_date, snapshot_date, size, returned_d1, returned_d3,
		       returned_d7, retention_d1, retention_d3, retention_d7, generated_at
		FROM cohorts
		WHERE snapshot_date = $1
	`

	rows, err := r.db.Query(ctx, query, snapshotDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohorts: %w", err)
	}
	defer rows.Close()

	var cohorts []domain.Cohort
	for rows.Next() {
		var c domain.Cohort
		if err := rows.Scan(
			&c.ID, &c.CohortDate, &c.SnapshotDate, &c.Size, &c.ReturnedD1,
			&c.ReturnedD3, &c.ReturnedD7, &c.RetentionD1, &c.RetentionD3,
			&c.RetentionD7, &c.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cohorts: %w", err)
	}
	return cohorts, nil
}

// CreateBatch inserts cohort rows
func (r *CohortRepository) CreateBatch(ctx context.Context, cohorts []*domain.Cohort) error {
	if len(cohorts) == 0 {
		return nil
	}

	query := `
		INSERT INTO cohorts
			(cohort_date, snapshot_date, size, returned_d1, returned_d3,
			 returned_d7, retention_d1, retention_d3, retention_d7, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, c := range cohorts {
		batch.Queue(query,
			c.CohortDate, c.SnapshotDate, c.Size, c.ReturnedD1, c.ReturnedD3,
			c.ReturnedD7, c.RetentionD1, c.RetentionD3, c.RetentionD7,
			c.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, c := range cohorts {
		if err := br.QueryRow().Scan(&c.ID); err != nil {
			return fmt.Errorf("failed to insert cohort %s: %w", c.CohortDate, err)
		}
	}
	return nil
}

// UpdateBatch updates existing cohort rows by ID
func (r *CohortRepository) UpdateBatch(ctx context.Context, cohorts []*domain.Cohort) error {
	if len(cohorts) == 0 {
		return nil
	}

	query := `
		UPDATE cohorts
		SET size = $2, returned_d1 = $3, returned_d3 = $4, returned_d7 = $5,
		    retention_d1 = $6, retention_d3 = $7, retention_d7 = $8,
		    generated_at = $9
		WHERE id = $1
	`

	batch := &pgx.Batch{}
	for _, c := range cohorts {
		batch.Queue(query,
			c.ID, c.Size, c.ReturnedD1, c.ReturnedD3, c.ReturnedD7,
			c.RetentionD1, c.RetentionD3, c.RetentionD7, c.GeneratedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for range cohorts {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to update cohort: %w", err)
		}
	}
	return nil
}
