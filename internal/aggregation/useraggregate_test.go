package aggregation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questday/qotd-backend/internal/domain"
)

func at(minute int) time.Time {
	return time.Date(2026, 3, 14, 10, minute, 0, 0, time.UTC)
}

func TestAggregateUsers_Pass1(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Submitted: []string{"paris", "london"}, Correct: []string{"paris"}, CreatedAt: at(0)},
		{UserID: "u1", AttemptIndex: 2, Submitted: []string{"paris", "rome"}, Correct: []string{"paris", "rome"}, CreatedAt: at(2)},
		{UserID: "u1", AttemptIndex: domain.HintMarkerIndex, CreatedAt: at(1)},
		{UserID: "u1", AttemptIndex: domain.SummaryMarkerIndex, Correct: []string{"paris", "rome", "berlin", "madrid"}, CreatedAt: at(3)},
	}

	set := AggregateUsers(events)

	require.Contains(t, set.Users, "u1")
	u := set.Users["u1"]
	assert.Equal(t, 2, u.AttemptsUsed, "markers are not attempts")
	assert.Equal(t, 1, u.HintCount)
	assert.Equal(t, 3, u.UniqueSubmitted(), "submissions union across attempts")
	assert.Equal(t, 2, u.UniqueCorrect())
	require.NotNil(t, u.SolveSeconds)
	assert.Equal(t, 120, *u.SolveSeconds, "first to last valid attempt")
	assert.Equal(t, 4, set.RequiredSlots, "longest correct list on any event wins")
}

func TestAggregateUsers_SingleAttemptHasNoSolveTime(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Submitted: []string{"paris"}, CreatedAt: at(0)},
	}

	set := AggregateUsers(events)

	assert.Nil(t, set.Users["u1"].SolveSeconds)
}

func TestAggregateUsers_SolvedFlag(t *testing.T) {
	events := []Event{
		{UserID: "u1", AttemptIndex: 1, Result: domain.ResultSuccess, CreatedAt: at(0)},
		{UserID: "u2", AttemptIndex: 1, Result: domain.ResultLockout, CreatedAt: at(0)},
	}

	set := AggregateUsers(events)

	assert.True(t, set.Users["u1"].Solved)
	assert.False(t, set.Users["u2"].Solved)
}

func TestCompletionPct(t *testing.T) {
	tests := []struct {
		correct, slots, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{5, 10, 50},
		{10, 10, 100},
		{12, 10, 100}, // clamped when correct exceeds slots
		{1, 3, 33},
		{2, 3, 67},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.correct, tt.slots), func(t *testing.T) {
			assert.Equal(t, tt.want, completionPct(tt.correct, tt.slots))
		})
	}
}

func TestAccuracyPct(t *testing.T) {
	tests := []struct {
		name                      string
		correct, submitted, slots int
		want                      int
	}{
		{"empty", 0, 0, 0, 0},
		{"exact", 8, 10, 10, 80},
		{"sloppy submitter", 5, 20, 10, 25},
		{"fewer guesses than slots uses slots", 3, 3, 10, 30},
		{"cannot exceed 100", 10, 10, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accuracyPct(tt.correct, tt.submitted, tt.slots)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestRareAnswers(t *testing.T) {
	// "obscure" found by 2 users (rare), "paris" by 3 (not rare).
	var events []Event
	for i, uid := range []string{"u1", "u2", "u3"} {
		events = append(events, Event{
			UserID: uid, AttemptIndex: 1,
			Submitted: []string{"paris"}, Correct: []string{"paris"},
			CreatedAt: at(i),
		})
	}
	for i, uid := range []string{"u1", "u2"} {
		events = append(events, Event{
			UserID: uid, AttemptIndex: 2,
			Submitted: []string{"obscure"}, Correct: []string{"obscure"},
			CreatedAt: at(10 + i),
		})
	}

	set := AggregateUsers(events)
	idx := BuildAnswerIndex(events)
	set.RareAnswers(idx)

	assert.Equal(t, 1, set.Users["u1"].RareAnswerCount)
	assert.Equal(t, 1, set.Users["u2"].RareAnswerCount)
	assert.Equal(t, 0, set.Users["u3"].RareAnswerCount)
}

func TestDaySet_UserIDsSorted(t *testing.T) {
	events := []Event{
		{UserID: "zed", AttemptIndex: 1},
		{UserID: "amy", AttemptIndex: 1},
		{UserID: "mia", AttemptIndex: 1},
	}

	set := AggregateUsers(events)

	assert.Equal(t, []string{"amy", "mia", "zed"}, set.UserIDs())
}

func BenchmarkAggregateUsers(b *testing.B) {
	events := make([]Event, 0, 3000)
	for i := 0; i < 1000; i++ {
		uid := fmt.Sprintf("user-%d", i)
		for j := 1; j <= 3; j++ {
			events = append(events, Event{
				UserID:       uid,
				AttemptIndex: j,
				Submitted:    []string{"paris", "london", "rome"},
				Correct:      []string{"paris"},
				CreatedAt:    at(j),
			})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		set := AggregateUsers(events)
		idx := BuildAnswerIndex(events)
		set.RareAnswers(idx)
	}
}
