package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questday/qotd-backend/internal/domain"
)

var now = time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)

func TestAdvance_NewUser(t *testing.T) {
	next, changed, err := Advance(nil, "u1", "2026-03-14", "de", "Europe", now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "u1", next.UserID)
	assert.Equal(t, "2026-03-14", next.FirstSeenDate)
	assert.Equal(t, "2026-03-14", next.LastPlayedDate)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
	assert.Equal(t, 1, next.TotalDaysPlayed)
	assert.Equal(t, "de", next.CountryCode)
	assert.Equal(t, "Europe", next.Region)
}

func TestAdvance_ConsecutiveDayIncrementsStreak(t *testing.T) {
	prev := &domain.UserMaster{
		UserID:          "u1",
		FirstSeenDate:   "2026-03-01",
		LastPlayedDate:  "2026-03-13",
		CurrentStreak:   4,
		LongestStreak:   6,
		TotalDaysPlayed: 10,
	}

	next, changed, err := Advance(prev, "u1", "2026-03-14", "de", "Europe", now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 5, next.CurrentStreak)
	assert.Equal(t, 6, next.LongestStreak)
	assert.Equal(t, 11, next.TotalDaysPlayed)
	assert.Equal(t, "2026-03-14", next.LastPlayedDate)
	assert.Equal(t, "2026-03-01", next.FirstSeenDate, "first seen date never changes")
}

func TestAdvance_GapResetsStreak(t *testing.T) {
	prev := &domain.UserMaster{
		UserID:          "u1",
		LastPlayedDate:  "2026-03-12",
		CurrentStreak:   7,
		LongestStreak:   7,
		TotalDaysPlayed: 20,
	}

	next, changed, err := Advance(prev, "u1", "2026-03-14", "de", "Europe", now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 7, next.LongestStreak)
	assert.Equal(t, 21, next.TotalDaysPlayed)
}

func TestAdvance_NewLongestStreak(t *testing.T) {
	prev := &domain.UserMaster{
		UserID:          "u1",
		LastPlayedDate:  "2026-03-13",
		CurrentStreak:   7,
		LongestStreak:   7,
		TotalDaysPlayed: 7,
	}

	next, _, err := Advance(prev, "u1", "2026-03-14", "de", "Europe", now)

	require.NoError(t, err)
	assert.Equal(t, 8, next.CurrentStreak)
	assert.Equal(t, 8, next.LongestStreak)
	assert.GreaterOrEqual(t, next.LongestStreak, next.CurrentStreak)
}

func TestAdvance_RerunSameDayIsNoOp(t *testing.T) {
	prev := &domain.UserMaster{
		UserID:          "u1",
		LastPlayedDate:  "2026-03-14",
		CurrentStreak:   5,
		LongestStreak:   6,
		TotalDaysPlayed: 11,
	}

	next, changed, err := Advance(prev, "u1", "2026-03-14", "de", "Europe", now)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, prev, next)
	assert.Equal(t, 5, next.CurrentStreak, "re-run must not double-increment")
}

func TestAdvance_MonthBoundary(t *testing.T) {
	prev := &domain.UserMaster{
		UserID:         "u1",
		LastPlayedDate: "2026-02-28",
		CurrentStreak:  2,
		LongestStreak:  2,
	}

	next, _, err := Advance(prev, "u1", "2026-03-01", "de", "Europe", now)

	require.NoError(t, err)
	assert.Equal(t, 3, next.CurrentStreak)
}

func TestContinues(t *testing.T) {
	tests := []struct {
		name       string
		lastPlayed string
		dateKey    string
		want       bool
	}{
		{"yesterday", "2026-03-13", "2026-03-14", true},
		{"two days ago", "2026-03-12", "2026-03-14", false},
		{"same day", "2026-03-14", "2026-03-14", false},
		{"future", "2026-03-15", "2026-03-14", false},
		{"blank", "", "2026-03-14", false},
		{"year boundary", "2025-12-31", "2026-01-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Continues(tt.lastPlayed, tt.dateKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
