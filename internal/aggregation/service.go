package aggregation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/questday/qotd-backend/internal/badge"
	"github.com/questday/qotd-backend/internal/cohort"
	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/logger"
	"github.com/questday/qotd-backend/internal/metrics"
	"github.com/questday/qotd-backend/internal/push"
	"github.com/questday/qotd-backend/internal/repository"
	"github.com/questday/qotd-backend/internal/streak"
	"github.com/questday/qotd-backend/internal/upsert"
)

// TableResult reports what one table's flush did during a run.
type TableResult struct {
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Error   string `json:"error,omitempty"`
}

// RunSummary is the aggregate trigger's response body. Partial failures
// show up as per-table errors rather than failing the whole run.
type RunSummary struct {
	DateKey         string                 `json:"date_key"`
	Events          int                    `json:"events"`
	Players         int                    `json:"players"`
	DistinctAnswers int                    `json:"distinct_answers"`
	RequiredSlots   int                    `json:"required_slots"`
	Tables          map[string]TableResult `json:"tables"`
	DurationMS      int64                  `json:"duration_ms"`
}

// Repositories bundles the stores the pipeline reads and writes.
type Repositories struct {
	Attempts   repository.Attempt
	Profiles   repository.Profile
	Masters    repository.UserMaster
	Aggregates repository.Aggregate
	Badges     repository.Badge
	Cohorts    repository.Cohort
	Pushes     repository.Push
}

// Service defines the interface for daily aggregation operations
type Service interface {
	// Run aggregates one game day. Safe to call repeatedly for the same
	// dateKey: every write path is keyed upsert or dedupe.
	Run(ctx context.Context, dateKey string) (*RunSummary, error)
}

type service struct {
	repos      Repositories
	batchSize  int
	fetchLimit int
	now        func() time.Time
}

// NewService creates a new aggregation service
func NewService(repos Repositories, batchSize, fetchLimit int) Service {
	return &service{
		repos:      repos,
		batchSize:  batchSize,
		fetchLimit: fetchLimit,
		now:        time.Now,
	}
}

func (s *service) Run(ctx context.Context, dateKey string) (*RunSummary, error) {
	log := logger.FromContext(ctx)
	start := s.now()

	if !datekey.Valid(dateKey) {
		metrics.AggregationRuns.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf("%s: %w", dateKey, domain.ErrInvalidDateKey)
	}

	log.Info(LogMsgRunStarted, "date_key", dateKey)

	summary := &RunSummary{
		DateKey: dateKey,
		Tables:  make(map[string]TableResult),
	}

	raw, err := s.repos.Attempts.GetEventsByDate(ctx, dateKey, s.fetchLimit)
	if err != nil {
		metrics.AggregationRuns.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf(ErrMsgFetchEvents, err)
	}
	metrics.AggregationEventsRead.Add(float64(len(raw)))

	events := NormalizeEvents(raw)
	summary.Events = len(events)
	if len(events) == 0 {
		log.Info(LogMsgNoEvents, "date_key", dateKey)
		metrics.AggregationRuns.WithLabelValues(metrics.StatusNoData).Inc()
		summary.DurationMS = time.Since(start).Milliseconds()
		return summary, nil
	}
	log.Debug(LogMsgEventsNormalized, "raw", len(raw), "normalized", len(events))

	// Pass 1, frequency index, pass 2. The index must be complete before
	// rare-answer counting and answer stat construction.
	set := AggregateUsers(events)
	idx := BuildAnswerIndex(events)
	set.RareAnswers(idx)

	summary.Players = len(set.Users)
	summary.DistinctAnswers = idx.Len()
	summary.RequiredSlots = set.RequiredSlots

	ranks := s.rankUsers(set)
	log.Debug(LogMsgProfilesBuilt, "players", summary.Players, "required_slots", set.RequiredSlots)

	// Master records are snapshotted once, before any writes. Streaks,
	// cohorts, and push targeting all read this snapshot so a partially
	// failed earlier run cannot skew them.
	snapshot, err := s.repos.Masters.GetAll(ctx)
	if err != nil {
		metrics.AggregationRuns.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf(ErrMsgFetchMasters, err)
	}

	current, masterArena, err := s.advanceStreaks(set, snapshot, dateKey, start)
	if err != nil {
		metrics.AggregationRuns.WithLabelValues(metrics.StatusError).Inc()
		return nil, err
	}

	badgeIDs := s.flushBadges(ctx, summary, set, ranks, dateKey, start)
	s.flushProfiles(ctx, summary, set, ranks, current, badgeIDs, dateKey, start)
	s.flushMasters(ctx, summary, masterArena)
	s.flushAggregates(ctx, summary, set, idx, dateKey, start)
	s.flushCohorts(ctx, summary, current, dateKey, start)
	s.flushPushTasks(ctx, summary, current, dateKey, start)

	summary.DurationMS = time.Since(start).Milliseconds()
	metrics.AggregationRuns.WithLabelValues(runStatus(summary)).Inc()
	metrics.AggregationRunDuration.Observe(time.Since(start).Seconds())

	log.Info(LogMsgRunCompleted,
		"date_key", dateKey,
		"players", summary.Players,
		"distinct_answers", summary.DistinctAnswers,
		"duration_ms", summary.DurationMS)
	return summary, nil
}

func runStatus(summary *RunSummary) string {
	for _, tr := range summary.Tables {
		if tr.Error != "" {
			return metrics.StatusError
		}
	}
	return metrics.StatusOK
}

// userRanks holds the per-user percentile results.
type userRanks struct {
	accuracy   map[string]int
	completion map[string]int
	speed      map[string]*int
}

func (s *service) rankUsers(set *DaySet) *userRanks {
	ranks := &userRanks{
		accuracy:   make(map[string]int, len(set.Users)),
		completion: make(map[string]int, len(set.Users)),
		speed:      make(map[string]*int, len(set.Users)),
	}

	accuracyPop := make([]int, 0, len(set.Users))
	completionPop := make([]int, 0, len(set.Users))
	var pacePop []int
	for _, u := range set.Users {
		accuracyPop = append(accuracyPop, u.AccuracyPct)
		completionPop = append(completionPop, u.CompletionPct)
		if u.SolveSeconds != nil {
			pacePop = append(pacePop, *u.SolveSeconds)
		}
	}

	for id, u := range set.Users {
		ranks.accuracy[id] = PercentileRank(accuracyPop, u.AccuracyPct)
		ranks.completion[id] = PercentileRank(completionPop, u.CompletionPct)
		if u.SolveSeconds != nil {
			ranks.speed[id] = PacePercentile(pacePop, *u.SolveSeconds)
		}
	}
	return ranks
}

// advanceStreaks applies the streak transition to every player of the
// day against the pre-write snapshot. It returns the post-run in-memory
// master state (all known users, players replaced by their advanced
// records) plus an arena holding the rows that actually need writing.
func (s *service) advanceStreaks(set *DaySet, snapshot []domain.UserMaster, dateKey string, now time.Time) (map[string]*domain.UserMaster, *upsert.Arena[domain.UserMaster], error) {
	arena := upsert.NewArena(snapshot, func(m *domain.UserMaster) string { return m.UserID }, s.batchSize)

	current := make(map[string]*domain.UserMaster, len(snapshot)+len(set.Users))
	for i := range snapshot {
		current[snapshot[i].UserID] = &snapshot[i]
	}

	for _, id := range set.UserIDs() {
		u := set.Users[id]
		next, changed, err := streak.Advance(current[id], id, dateKey, u.Country, u.Region, now)
		if err != nil {
			return nil, nil, err
		}
		current[id] = next
		if changed {
			arena.Upsert(next, nil)
		}
	}
	return current, arena, nil
}

func (s *service) flushMasters(ctx context.Context, summary *RunSummary, arena *upsert.Arena[domain.UserMaster]) {
	created, updated, err := arena.Flush(ctx,
		wrap(s.repos.Masters.CreateBatch),
		wrap(s.repos.Masters.UpdateBatch))
	s.record(ctx, summary, TableMasters, created, updated, err)
}

// flushBadges evaluates and persists badges, returning each user's full
// badge ID list for the day (existing plus newly created) so profiles
// can back-link them. A nil return means the stage failed and profiles
// must preserve whatever links they already have.
func (s *service) flushBadges(ctx context.Context, summary *RunSummary, set *DaySet, ranks *userRanks, dateKey string, now time.Time) map[string][]int64 {
	existing, err := s.repos.Badges.GetByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableBadges, 0, 0, fmt.Errorf(ErrMsgFetchBadges, err))
		return nil
	}

	ids := make(map[string][]int64, len(set.Users))
	seen := make(map[string]struct{}, len(existing))
	for i := range existing {
		b := &existing[i]
		seen[badge.Key(b.UserID, b.Name)] = struct{}{}
		ids[b.UserID] = append(ids[b.UserID], b.ID)
	}

	var created []*domain.Badge
	for _, id := range set.UserIDs() {
		u := set.Users[id]
		earned := badge.Evaluate(badge.Input{
			UserID:               id,
			DateKey:              dateKey,
			CompletionPct:        u.CompletionPct,
			AccuracyPct:          u.AccuracyPct,
			HintCount:            u.HintCount,
			AttemptsUsed:         u.AttemptsUsed,
			RareAnswerCount:      u.RareAnswerCount,
			PercentileAccuracy:   ranks.accuracy[id],
			PercentileCompletion: ranks.completion[id],
			PercentileSpeed:      ranks.speed[id],
		}, now)

		for _, b := range earned {
			if _, dup := seen[badge.Key(b.UserID, b.Name)]; dup {
				continue
			}
			created = append(created, b)
		}
	}

	arena := upsert.NewArena(nil, func(b *domain.Badge) string { return badge.Key(b.UserID, b.Name) }, s.batchSize)
	for _, b := range created {
		arena.QueueCreate(b)
	}
	createdCount, _, err := arena.Flush(ctx, wrap(s.repos.Badges.CreateBatch), wrap[domain.Badge](nil))
	s.record(ctx, summary, TableBadges, createdCount, 0, err)
	if err != nil {
		return nil
	}

	for _, b := range created {
		metrics.BadgesAwarded.WithLabelValues(b.Name).Inc()
		ids[b.UserID] = append(ids[b.UserID], b.ID)
	}
	for _, list := range ids {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}
	return ids
}

func (s *service) flushProfiles(ctx context.Context, summary *RunSummary, set *DaySet, ranks *userRanks, current map[string]*domain.UserMaster, badgeIDs map[string][]int64, dateKey string, now time.Time) {
	existing, err := s.repos.Profiles.GetByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableProfiles, 0, 0, fmt.Errorf(ErrMsgFetchProfiles, err))
		return
	}

	arena := upsert.NewArena(existing, func(p *domain.UserDailyProfile) string { return p.UserID }, s.batchSize)
	for _, id := range set.UserIDs() {
		u := set.Users[id]
		master := current[id]

		p := &domain.UserDailyProfile{
			UserID:               id,
			DateKey:              dateKey,
			Country:              u.Country,
			Region:               u.Region,
			AttemptsUsed:         u.AttemptsUsed,
			HintCount:            u.HintCount,
			UniqueSubmitted:      u.UniqueSubmitted(),
			UniqueCorrect:        u.UniqueCorrect(),
			CompletionPct:        u.CompletionPct,
			AccuracyPct:          u.AccuracyPct,
			SolveSeconds:         u.SolveSeconds,
			RareAnswerCount:      u.RareAnswerCount,
			Archetype:            Classify(u),
			PercentileAccuracy:   ranks.accuracy[id],
			PercentileCompletion: ranks.completion[id],
			PercentileSpeed:      ranks.speed[id],
			StreakContinues:      master.CurrentStreak > 1,
			FirstSolveToday:      master.TotalDaysPlayed == 1 && u.Solved,
			GeneratedAt:          now,
		}
		if badgeIDs != nil {
			p.BadgeIDs = badgeIDs[id]
		}

		arena.Upsert(p, func(old, new *domain.UserDailyProfile) {
			new.ID = old.ID
			if new.BadgeIDs == nil {
				new.BadgeIDs = old.BadgeIDs
			}
		})
	}

	created, updated, err := arena.Flush(ctx,
		wrap(s.repos.Profiles.CreateBatch),
		wrap(s.repos.Profiles.UpdateBatch))
	s.record(ctx, summary, TableProfiles, created, updated, err)
}

func (s *service) flushAggregates(ctx context.Context, summary *RunSummary, set *DaySet, idx *AnswerIndex, dateKey string, now time.Time) {
	rollup := buildRollup(set, idx, dateKey, now)

	existing, err := s.repos.Aggregates.GetAggregatesByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableAggregates, 0, 0, fmt.Errorf(ErrMsgFetchAggregates, err))
	} else {
		arena := upsert.NewArena(existing, func(a *domain.DailyAggregate) string { return a.DateKey }, s.batchSize)
		arena.Upsert(rollup.global, func(old, new *domain.DailyAggregate) { new.ID = old.ID })
		created, updated, err := arena.Flush(ctx,
			wrap(s.repos.Aggregates.CreateAggregateBatch),
			wrap(s.repos.Aggregates.UpdateAggregateBatch))
		s.record(ctx, summary, TableAggregates, created, updated, err)
	}

	existingRegions, err := s.repos.Aggregates.GetRegionStatsByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableRegionStats, 0, 0, fmt.Errorf(ErrMsgFetchAggregates, err))
	} else {
		arena := upsert.NewArena(existingRegions, func(r *domain.RegionStat) string { return r.Region }, s.batchSize)
		for _, r := range rollup.regions {
			arena.Upsert(r, func(old, new *domain.RegionStat) { new.ID = old.ID })
		}
		created, updated, err := arena.Flush(ctx,
			wrap(s.repos.Aggregates.CreateRegionStatBatch),
			wrap(s.repos.Aggregates.UpdateRegionStatBatch))
		s.record(ctx, summary, TableRegionStats, created, updated, err)
	}

	existingAnswers, err := s.repos.Aggregates.GetAnswerStatsByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableAnswerStats, 0, 0, fmt.Errorf(ErrMsgFetchAggregates, err))
	} else {
		arena := upsert.NewArena(existingAnswers, func(a *domain.AnswerStat) string { return a.Answer }, s.batchSize)
		for _, a := range rollup.answers {
			arena.Upsert(a, func(old, new *domain.AnswerStat) { new.ID = old.ID })
		}
		created, updated, err := arena.Flush(ctx,
			wrap(s.repos.Aggregates.CreateAnswerStatBatch),
			wrap(s.repos.Aggregates.UpdateAnswerStatBatch))
		s.record(ctx, summary, TableAnswerStats, created, updated, err)
	}
}

func (s *service) flushCohorts(ctx context.Context, summary *RunSummary, current map[string]*domain.UserMaster, dateKey string, now time.Time) {
	masters := make([]domain.UserMaster, 0, len(current))
	for _, m := range current {
		masters = append(masters, *m)
	}

	cohorts, err := cohort.Build(masters, dateKey, now)
	if err != nil {
		s.record(ctx, summary, TableCohorts, 0, 0, err)
		return
	}

	existing, err := s.repos.Cohorts.GetBySnapshot(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TableCohorts, 0, 0, fmt.Errorf(ErrMsgFetchCohorts, err))
		return
	}

	arena := upsert.NewArena(existing, func(c *domain.Cohort) string { return c.CohortDate }, s.batchSize)
	for _, c := range cohorts {
		arena.Upsert(c, func(old, new *domain.Cohort) { new.ID = old.ID })
	}
	created, updated, err := arena.Flush(ctx,
		wrap(s.repos.Cohorts.CreateBatch),
		wrap(s.repos.Cohorts.UpdateBatch))
	s.record(ctx, summary, TableCohorts, created, updated, err)
}

func (s *service) flushPushTasks(ctx context.Context, summary *RunSummary, current map[string]*domain.UserMaster, dateKey string, now time.Time) {
	existing, err := s.repos.Pushes.GetByDate(ctx, dateKey)
	if err != nil {
		s.record(ctx, summary, TablePushTasks, 0, 0, fmt.Errorf(ErrMsgFetchPushTasks, err))
		return
	}

	arena := upsert.NewArena(existing, func(t *domain.PushTask) string { return push.Key(t.UserID, t.Type) }, s.batchSize)

	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var queued []*domain.PushTask
	for _, id := range ids {
		task, err := push.Target(current[id], dateKey, now)
		if err != nil {
			s.record(ctx, summary, TablePushTasks, 0, 0, err)
			return
		}
		if task == nil || arena.Has(push.Key(task.UserID, task.Type)) {
			continue
		}
		arena.QueueCreate(task)
		queued = append(queued, task)
	}

	created, _, err := arena.Flush(ctx, wrap(s.repos.Pushes.CreateBatch), wrap[domain.PushTask](nil))
	s.record(ctx, summary, TablePushTasks, created, 0, err)
	if err == nil {
		for _, t := range queued {
			metrics.PushTasksQueued.WithLabelValues(string(t.Type)).Inc()
		}
	}
}

// record stores one table's outcome in the summary. A failed table is
// logged and counted but never aborts the run; the remaining tables are
// independent outputs of the same input snapshot.
func (s *service) record(ctx context.Context, summary *RunSummary, table string, created, updated int, err error) {
	result := TableResult{Created: created, Updated: updated}
	if err != nil {
		result.Error = err.Error()
		metrics.AggregationTableErrors.WithLabelValues(table).Inc()
		logger.FromContext(ctx).Warn(LogMsgTableFlushFailed, "table", table, "error", err)
	}
	summary.Tables[table] = result
	metrics.RecordRowsWritten(table, created, updated)
}

// wrap adapts a repository batch method to the arena's WriteFunc. A nil
// method becomes a no-op, used for create-only tables.
func wrap[T any](fn func(ctx context.Context, rows []*T) error) upsert.WriteFunc[T] {
	if fn == nil {
		return func(ctx context.Context, rows []*T) error { return nil }
	}
	return fn
}
