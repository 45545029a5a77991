package aggregation

import (
	"math"
	"sort"
	"time"

	"github.com/questday/qotd-backend/internal/domain"
)

// UserDay holds one user's raw per-day metrics from pass 1 plus the
// rare-answer count filled in by pass 2.
type UserDay struct {
	UserID          string
	Country         string
	Region          string
	AttemptsUsed    int
	HintCount       int
	Submitted       map[string]struct{}
	Correct         map[string]struct{}
	SolveSeconds    *int
	Solved          bool
	CompletionPct   int
	AccuracyPct     int
	RareAnswerCount int

	firstAttempt time.Time
	lastAttempt  time.Time
}

// UniqueSubmitted returns the size of the user's normalized submitted set.
func (u *UserDay) UniqueSubmitted() int { return len(u.Submitted) }

// UniqueCorrect returns the size of the user's normalized correct set.
func (u *UserDay) UniqueCorrect() int { return len(u.Correct) }

// DaySet is the output of pass 1: every user's raw metrics plus the
// day-wide required-slot count.
type DaySet struct {
	Users         map[string]*UserDay
	RequiredSlots int
}

// AggregateUsers runs pass 1: group events by user and compute raw
// per-user metrics. RequiredSlots is the longest correct-answer list on
// any single event that day, the proxy for how many answers exist.
// Completion and accuracy are derived here because they only depend on
// pass 1 quantities.
func AggregateUsers(events []Event) *DaySet {
	set := &DaySet{Users: make(map[string]*UserDay)}

	for i := range events {
		ev := &events[i]
		if n := len(ev.Correct); n > set.RequiredSlots {
			set.RequiredSlots = n
		}

		user, ok := set.Users[ev.UserID]
		if !ok {
			user = &UserDay{
				UserID:    ev.UserID,
				Country:   ev.Country,
				Region:    ev.Region,
				Submitted: make(map[string]struct{}),
				Correct:   make(map[string]struct{}),
			}
			set.Users[ev.UserID] = user
		}

		if ev.IsHint() {
			user.HintCount++
		}
		if ev.Result == domain.ResultSuccess {
			user.Solved = true
		}
		if !ev.IsAttempt() {
			continue
		}

		user.AttemptsUsed++
		for _, a := range ev.Submitted {
			user.Submitted[a] = struct{}{}
		}
		for _, a := range ev.Correct {
			user.Correct[a] = struct{}{}
		}
		if !ev.CreatedAt.IsZero() {
			if user.firstAttempt.IsZero() || ev.CreatedAt.Before(user.firstAttempt) {
				user.firstAttempt = ev.CreatedAt
			}
			if ev.CreatedAt.After(user.lastAttempt) {
				user.lastAttempt = ev.CreatedAt
			}
		}
	}

	for _, user := range set.Users {
		user.SolveSeconds = solveDuration(user.firstAttempt, user.lastAttempt)
		user.CompletionPct = completionPct(user.UniqueCorrect(), set.RequiredSlots)
		user.AccuracyPct = accuracyPct(user.UniqueCorrect(), user.UniqueSubmitted(), set.RequiredSlots)
	}

	return set
}

// RareAnswers runs pass 2: count each user's correct answers that at most
// RareAnswerMaxPlayers distinct users found. Requires a fully built index.
func (s *DaySet) RareAnswers(idx *AnswerIndex) {
	for _, user := range s.Users {
		count := 0
		for answer := range user.Correct {
			if entry := idx.Lookup(answer); entry != nil && entry.IsRare() {
				count++
			}
		}
		user.RareAnswerCount = count
	}
}

// UserIDs returns the users of the day in sorted order so downstream
// stages iterate deterministically.
func (s *DaySet) UserIDs() []string {
	ids := make([]string, 0, len(s.Users))
	for id := range s.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// solveDuration is the whole-second delta between the first and last
// valid attempt, nil with fewer than two timestamps, clamped non-negative.
func solveDuration(first, last time.Time) *int {
	if first.IsZero() || last.IsZero() || first.Equal(last) {
		return nil
	}
	secs := int(last.Sub(first).Seconds())
	if secs < 0 {
		secs = 0
	}
	return &secs
}

// completionPct is round(100*min(correct,slots)/slots), 0 when no slots
// are known, clamped to [0,100].
func completionPct(uniqueCorrect, requiredSlots int) int {
	if requiredSlots == 0 {
		return 0
	}
	if uniqueCorrect > requiredSlots {
		uniqueCorrect = requiredSlots
	}
	pct := int(math.Round(100 * float64(uniqueCorrect) / float64(requiredSlots)))
	return clampPct(pct)
}

// accuracyPct is round(100*correct/max(submitted,slots)). The max
// denominator keeps accuracy from exceeding 100 when a user submits
// fewer guesses than slots exist.
func accuracyPct(uniqueCorrect, uniqueSubmitted, requiredSlots int) int {
	denom := uniqueSubmitted
	if requiredSlots > denom {
		denom = requiredSlots
	}
	if denom == 0 {
		return 0
	}
	return clampPct(int(math.Round(100 * float64(uniqueCorrect) / float64(denom))))
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
