package datekey

import (
	"fmt"
	"regexp"
	"time"
)

// Layout is the canonical YYYY-MM-DD form of a game-day identifier.
const Layout = "2006-01-02"

// DefaultTimezone is the reference timezone used when none is configured.
const DefaultTimezone = "Europe/London"

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Valid reports whether s is a well-formed date key.
func Valid(s string) bool {
	if !keyPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(Layout, s)
	return err == nil
}

// Parse converts a date key into a time anchored at noon UTC for that
// calendar day. Noon avoids DST edge cases when adding or subtracting days.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// Format returns the date key for t in the given location.
func Format(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// Today returns the current date key in the given location.
func Today(loc *time.Location) string {
	return Format(time.Now(), loc)
}

// OffsetDays returns the date key offset whole days from key.
// The calculation goes through noon UTC so a DST transition in the
// reference timezone cannot shift the calendar day.
func OffsetDays(key string, days int) (string, error) {
	anchor, err := Parse(key)
	if err != nil {
		return "", err
	}
	return anchor.AddDate(0, 0, days).Format(Layout), nil
}

// Yesterday returns the date key of the day before today in loc.
func Yesterday(loc *time.Location) string {
	now := time.Now().In(loc)
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	return anchor.AddDate(0, 0, -1).Format(Layout)
}

// DaysBetween returns the whole-day difference to - from (e.g. the user's
// inactive days given from=LastPlayedDate, to=dateKey). Returns an error if
// either key is malformed.
func DaysBetween(from, to string) (int, error) {
	a, err := Parse(from)
	if err != nil {
		return 0, err
	}
	b, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}
