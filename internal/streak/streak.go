// Package streak advances the persistent per-user master records by one
// game day. The transition is a small state machine driven by how the
// user's last played date relates to the day being aggregated.
package streak

import (
	"fmt"
	"time"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
)

// Advance returns the master record state after the user played on
// dateKey. prev is the snapshot taken before any writes of this run; nil
// means the user has never been seen.
//
// changed reports whether the record needs writing. A master whose
// LastPlayedDate already equals dateKey was updated by an earlier run of
// the same day and is returned untouched, which is what makes the whole
// pipeline safe to re-run without double-incrementing streaks.
func Advance(prev *domain.UserMaster, userID, dateKey, country, region string, now time.Time) (next *domain.UserMaster, changed bool, err error) {
	if prev == nil {
		return &domain.UserMaster{
			UserID:          userID,
			FirstSeenDate:   dateKey,
			LastSeenDate:    dateKey,
			LastPlayedDate:  dateKey,
			CurrentStreak:   1,
			LongestStreak:   1,
			TotalDaysPlayed: 1,
			CountryCode:     country,
			Region:          region,
			UpdatedAt:       now,
		}, true, nil
	}

	if prev.LastPlayedDate == dateKey {
		return prev, false, nil
	}

	continues, err := Continues(prev.LastPlayedDate, dateKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to compare played dates for user %s: %w", userID, err)
	}

	next = &domain.UserMaster{}
	*next = *prev
	if continues {
		next.CurrentStreak = prev.CurrentStreak + 1
	} else {
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.TotalDaysPlayed = prev.TotalDaysPlayed + 1
	next.LastSeenDate = dateKey
	next.LastPlayedDate = dateKey
	next.CountryCode = country
	next.Region = region
	next.UpdatedAt = now

	return next, true, nil
}

// Continues reports whether lastPlayed is exactly the calendar day
// before dateKey. Anything else, including a blank lastPlayed, breaks
// the streak.
func Continues(lastPlayed, dateKey string) (bool, error) {
	if lastPlayed == "" {
		return false, nil
	}
	yesterday, err := datekey.OffsetDays(dateKey, -1)
	if err != nil {
		return false, err
	}
	return lastPlayed == yesterday, nil
}
