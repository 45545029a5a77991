// Package analytics serves the read side of the engine: per-user day
// views and the global day rollup the front end renders.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/logger"
	"github.com/questday/qotd-backend/internal/repository"
)

// ErrNoAggregate is returned when a day has not been aggregated yet
var ErrNoAggregate = errors.New(ErrMsgNoAggregate)

// UserAnalytics is the personal view for one user and day. Profile is
// nil when the user did not play that day; Master is always present for
// a known user.
type UserAnalytics struct {
	Profile *domain.UserDailyProfile `json:"profile,omitempty"`
	Master  *domain.UserMaster       `json:"master"`
	Badges  []domain.Badge           `json:"badges"`
}

// GlobalAnalytics is the public day rollup view
type GlobalAnalytics struct {
	Aggregate  *domain.DailyAggregate `json:"aggregate"`
	Regions    []domain.RegionStat    `json:"regions"`
	TopAnswers []domain.AnswerStat    `json:"top_answers"`
}

// Service defines the interface for analytics read operations
type Service interface {
	GetUserAnalytics(ctx context.Context, userID, dateKey string) (*UserAnalytics, error)
	GetGlobalAnalytics(ctx context.Context, dateKey string) (*GlobalAnalytics, error)

	// InvalidateDay drops a cached global view, called after a re-run
	// rewrites the day's rollups.
	InvalidateDay(dateKey string)
}

type service struct {
	profiles   repository.Profile
	masters    repository.UserMaster
	badges     repository.Badge
	aggregates repository.Aggregate
	cache      *dayCache
}

// NewService creates a new analytics service
func NewService(profiles repository.Profile, masters repository.UserMaster, badges repository.Badge, aggregates repository.Aggregate) Service {
	return &service{
		profiles:   profiles,
		masters:    masters,
		badges:     badges,
		aggregates: aggregates,
		cache:      newDayCache(GlobalCacheSize, GlobalCacheTTL),
	}
}

func (s *service) GetUserAnalytics(ctx context.Context, userID, dateKey string) (*UserAnalytics, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgUserAnalyticsCalled, "user_id", userID, "date_key", dateKey)

	if !datekey.Valid(dateKey) {
		return nil, fmt.Errorf("%s: %w", dateKey, domain.ErrInvalidDateKey)
	}

	master, err := s.masters.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf(ErrMsgGetMasterFailed, err)
	}

	view := &UserAnalytics{Master: master, Badges: []domain.Badge{}}

	profile, err := s.profiles.GetByUserAndDate(ctx, userID, dateKey)
	switch {
	case err == nil:
		view.Profile = profile
	case errors.Is(err, domain.ErrUserNotFound):
		// Known user who did not play this day.
	default:
		return nil, fmt.Errorf(ErrMsgGetProfileFailed, err)
	}

	badges, err := s.badges.GetByUser(ctx, userID, UserBadgeLimit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetBadgesFailed, err)
	}
	if badges != nil {
		view.Badges = badges
	}

	return view, nil
}

func (s *service) GetGlobalAnalytics(ctx context.Context, dateKey string) (*GlobalAnalytics, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGlobalAnalyticsCalled, "date_key", dateKey)

	if !datekey.Valid(dateKey) {
		return nil, fmt.Errorf("%s: %w", dateKey, domain.ErrInvalidDateKey)
	}

	if view, ok := s.cache.Get(dateKey); ok {
		log.Debug(LogMsgGlobalCacheHit, "date_key", dateKey)
		return view, nil
	}

	aggregates, err := s.aggregates.GetAggregatesByDate(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAggregateFailed, err)
	}
	if len(aggregates) == 0 {
		return nil, fmt.Errorf("%s: %w", dateKey, ErrNoAggregate)
	}

	regions, err := s.aggregates.GetRegionStatsByDate(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAggregateFailed, err)
	}

	answers, err := s.aggregates.GetAnswerStatsByDate(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetAggregateFailed, err)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].Rank < answers[j].Rank })
	if len(answers) > TopAnswersLimit {
		answers = answers[:TopAnswersLimit]
	}

	view := &GlobalAnalytics{
		Aggregate:  &aggregates[0],
		Regions:    regions,
		TopAnswers: answers,
	}
	s.cache.Set(dateKey, view)
	return view, nil
}

func (s *service) InvalidateDay(dateKey string) {
	s.cache.Invalidate(dateKey)
}
