// Package push selects at most one re-engagement notification type per
// user per day from the user's master record. The cascade is ordered;
// the first matching rule wins and the rest are never considered.
package push

import (
	"fmt"
	"time"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
)

// Cascade thresholds
const (
	HighStreakMin       = 10
	StreakRiskMinStreak = 3
	StreakRiskMinDays   = 1
	ReEngageMinDays     = 5
	ReturningMinStreak  = 2
)

type rule struct {
	match func(m *domain.UserMaster, inactiveDays int) bool
	typ   domain.PushType
}

var cascade = []rule{
	{
		typ: domain.PushHighStreak,
		match: func(m *domain.UserMaster, _ int) bool {
			return m.CurrentStreak >= HighStreakMin
		},
	},
	{
		typ: domain.PushStreakRisk,
		match: func(m *domain.UserMaster, inactive int) bool {
			return m.CurrentStreak >= StreakRiskMinStreak && inactive >= StreakRiskMinDays
		},
	},
	{
		typ: domain.PushNewUser,
		match: func(m *domain.UserMaster, _ int) bool {
			return m.TotalDaysPlayed == 1
		},
	},
	{
		typ: domain.PushReEngage,
		match: func(m *domain.UserMaster, inactive int) bool {
			return inactive >= ReEngageMinDays
		},
	},
	{
		typ: domain.PushReturningToday,
		match: func(m *domain.UserMaster, inactive int) bool {
			return inactive == 0 && m.CurrentStreak >= ReturningMinStreak
		},
	},
}

// Target returns the push task for a user's state on dateKey, or nil
// when no rule matches. inactiveDays is the whole-day gap between the
// user's last played date and dateKey; a user with no played date is
// treated as maximally inactive.
func Target(m *domain.UserMaster, dateKey string, now time.Time) (*domain.PushTask, error) {
	inactive := ReEngageMinDays
	if m.LastPlayedDate != "" {
		var err error
		inactive, err = datekey.DaysBetween(m.LastPlayedDate, dateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to compute inactive days for user %s: %w", m.UserID, err)
		}
	}

	for _, r := range cascade {
		if r.match(m, inactive) {
			return &domain.PushTask{
				UserID:      m.UserID,
				DateKey:     dateKey,
				Type:        r.typ,
				Country:     m.CountryCode,
				Region:      m.Region,
				GeneratedAt: now,
			}, nil
		}
	}
	return nil, nil
}

// Key is the idempotency key a task is de-duplicated on within a day.
func Key(userID string, typ domain.PushType) string {
	return userID + "::" + string(typ)
}
