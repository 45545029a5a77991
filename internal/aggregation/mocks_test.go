package aggregation

import (
	"context"
	"sync"

	"github.com/questday/qotd-backend/internal/domain"
)

// In-memory fakes backing the service tests. They behave like the real
// repositories (ID assignment on create, filtering on read) so the
// idempotence tests exercise the same create-vs-update decisions the
// pipeline makes in production.

type fakeAttemptRepo struct {
	events []domain.AttemptEvent
	err    error
}

func (f *fakeAttemptRepo) InsertEvent(_ context.Context, event *domain.AttemptEvent) error {
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeAttemptRepo) GetEventsByDate(_ context.Context, dateKey string, limit int) ([]domain.AttemptEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.AttemptEvent
	for _, e := range f.events {
		if e.DateKey == dateKey && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	mu     sync.Mutex
	rows   map[int64]domain.UserDailyProfile
	nextID int64
	getErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{rows: make(map[int64]domain.UserDailyProfile)}
}

func (f *fakeProfileRepo) GetByDate(_ context.Context, dateKey string) ([]domain.UserDailyProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.UserDailyProfile
	for _, p := range f.rows {
		if p.DateKey == dateKey {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) GetByUserAndDate(_ context.Context, userID, dateKey string) (*domain.UserDailyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if p.UserID == userID && p.DateKey == dateKey {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeProfileRepo) CreateBatch(_ context.Context, profiles []*domain.UserDailyProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range profiles {
		f.nextID++
		p.ID = f.nextID
		f.rows[p.ID] = *p
	}
	return nil
}

func (f *fakeProfileRepo) UpdateBatch(_ context.Context, profiles []*domain.UserDailyProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range profiles {
		f.rows[p.ID] = *p
	}
	return nil
}

type fakeMasterRepo struct {
	mu     sync.Mutex
	rows   map[string]domain.UserMaster
	getErr error
}

func newFakeMasterRepo() *fakeMasterRepo {
	return &fakeMasterRepo{rows: make(map[string]domain.UserMaster)}
}

func (f *fakeMasterRepo) GetAll(_ context.Context) ([]domain.UserMaster, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.UserMaster, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMasterRepo) GetByUserID(_ context.Context, userID string) (*domain.UserMaster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &m, nil
}

func (f *fakeMasterRepo) CreateBatch(_ context.Context, masters []*domain.UserMaster) error {
	return f.UpdateBatch(context.Background(), masters)
}

func (f *fakeMasterRepo) UpdateBatch(_ context.Context, masters []*domain.UserMaster) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range masters {
		f.rows[m.UserID] = *m
	}
	return nil
}

type fakeAggregateRepo struct {
	mu         sync.Mutex
	aggregates map[int64]domain.DailyAggregate
	regions    map[int64]domain.RegionStat
	answers    map[int64]domain.AnswerStat
	nextID     int64
	getErr     error
}

func newFakeAggregateRepo() *fakeAggregateRepo {
	return &fakeAggregateRepo{
		aggregates: make(map[int64]domain.DailyAggregate),
		regions:    make(map[int64]domain.RegionStat),
		answers:    make(map[int64]domain.AnswerStat),
	}
}

func (f *fakeAggregateRepo) GetAggregatesByDate(_ context.Context, dateKey string) ([]domain.DailyAggregate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DailyAggregate
	for _, a := range f.aggregates {
		if a.DateKey == dateKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAggregateRepo) CreateAggregateBatch(_ context.Context, rows []*domain.DailyAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range rows {
		f.nextID++
		a.ID = f.nextID
		f.aggregates[a.ID] = *a
	}
	return nil
}

func (f *fakeAggregateRepo) UpdateAggregateBatch(_ context.Context, rows []*domain.DailyAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range rows {
		f.aggregates[a.ID] = *a
	}
	return nil
}

func (f *fakeAggregateRepo) GetRegionStatsByDate(_ context.Context, dateKey string) ([]domain.RegionStat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RegionStat
	for _, r := range f.regions {
		if r.DateKey == dateKey {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAggregateRepo) CreateRegionStatBatch(_ context.Context, rows []*domain.RegionStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.nextID++
		r.ID = f.nextID
		f.regions[r.ID] = *r
	}
	return nil
}

func (f *fakeAggregateRepo) UpdateRegionStatBatch(_ context.Context, rows []*domain.RegionStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.regions[r.ID] = *r
	}
	return nil
}

func (f *fakeAggregateRepo) GetAnswerStatsByDate(_ context.Context, dateKey string) ([]domain.AnswerStat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AnswerStat
	for _, a := range f.answers {
		if a.DateKey == dateKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAggregateRepo) CreateAnswerStatBatch(_ context.Context, rows []*domain.AnswerStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range rows {
		f.nextID++
		a.ID = f.nextID
		f.answers[a.ID] = *a
	}
	return nil
}

func (f *fakeAggregateRepo) UpdateAnswerStatBatch(_ context.Context, rows []*domain.AnswerStat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range rows {
		f.answers[a.ID] = *a
	}
	return nil
}

type fakeBadgeRepo struct {
	mu        sync.Mutex
	rows      map[int64]domain.Badge
	nextID    int64
	getErr    error
	createErr error
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{rows: make(map[int64]domain.Badge)}
}

func (f *fakeBadgeRepo) GetByDate(_ context.Context, dateKey string) ([]domain.Badge, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Badge
	for _, b := range f.rows {
		if b.DateKey == dateKey {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) GetByUser(_ context.Context, userID string, limit int) ([]domain.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Badge
	for _, b := range f.rows {
		if b.UserID == userID && len(out) < limit {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBadgeRepo) CreateBatch(_ context.Context, badges []*domain.Badge) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range badges {
		f.nextID++
		b.ID = f.nextID
		f.rows[b.ID] = *b
	}
	return nil
}

type fakeCohortRepo struct {
	mu     sync.Mutex
	rows   map[int64]domain.Cohort
	nextID int64
}

func newFakeCohortRepo() *fakeCohortRepo {
	return &fakeCohortRepo{rows: make(map[int64]domain.Cohort)}
}

func (f *fakeCohortRepo) GetBySnapshot(_ context.Context, snapshotDate string) ([]domain.Cohort, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Cohort
	for _, c := range f.rows {
		if c.SnapshotDate == snapshotDate {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCohortRepo) CreateBatch(_ context.Context, cohorts []*domain.Cohort) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cohorts {
		f.nextID++
		c.ID = f.nextID
		f.rows[c.ID] = *c
	}
	return nil
}

func (f *fakeCohortRepo) UpdateBatch(_ context.Context, cohorts []*domain.Cohort) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range cohorts {
		f.rows[c.ID] = *c
	}
	return nil
}

type fakePushRepo struct {
	mu     sync.Mutex
	rows   map[int64]domain.PushTask
	nextID int64
}

func newFakePushRepo() *fakePushRepo {
	return &fakePushRepo{rows: make(map[int64]domain.PushTask)}
}

func (f *fakePushRepo) GetByDate(_ context.Context, dateKey string) ([]domain.PushTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PushTask
	for _, t := range f.rows {
		if t.DateKey == dateKey {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePushRepo) GetPending(_ context.Context, dateKey string) ([]domain.PushTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PushTask
	for _, t := range f.rows {
		if t.DateKey == dateKey && !t.Delivered {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakePushRepo) CreateBatch(_ context.Context, tasks []*domain.PushTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range tasks {
		f.nextID++
		t.ID = f.nextID
		f.rows[t.ID] = *t
	}
	return nil
}

func (f *fakePushRepo) MarkDelivered(_ context.Context, ids []int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if t, ok := f.rows[id]; ok && !t.Delivered {
			t.Delivered = true
			f.rows[id] = t
			n++
		}
	}
	return n, nil
}
