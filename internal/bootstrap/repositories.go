package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questday/qotd-backend/internal/aggregation"
	"github.com/questday/qotd-backend/internal/database/postgres"
	"github.com/questday/qotd-backend/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Attempts   repository.Attempt
	Profiles   repository.Profile
	Masters    repository.UserMaster
	Aggregates repository.Aggregate
	Badges     repository.Badge
	Cohorts    repository.Cohort
	Pushes     repository.Push
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Attempts:   postgres.NewAttemptRepository(dbPool),
		Profiles:   postgres.NewProfileRepository(dbPool),
		Masters:    postgres.NewUserMasterRepository(dbPool),
		Aggregates: postgres.NewAggregateRepository(dbPool),
		Badges:     postgres.NewBadgeRepository(dbPool),
		Cohorts:    postgres.NewCohortRepository(dbPool),
		Pushes:     postgres.NewPushRepository(dbPool),
	}
}

// ForAggregation adapts the bundle to what the aggregation pipeline expects.
func (r *Repositories) ForAggregation() aggregation.Repositories {
	return aggregation.Repositories{
		Attempts:   r.Attempts,
		Profiles:   r.Profiles,
		Masters:    r.Masters,
		Aggregates: r.Aggregates,
		Badges:     r.Badges,
		Cohorts:    r.Cohorts,
		Pushes:     r.Pushes,
	}
}
