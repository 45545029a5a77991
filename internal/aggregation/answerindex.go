package aggregation

import (
	"sort"
	"time"
)

// AnswerEntry accumulates the day-wide footprint of one normalized answer.
type AnswerEntry struct {
	Answer    string
	Users     map[string]struct{}
	Countries map[string]struct{}
	Regions   map[string]struct{}
	FirstUser string
	FirstTime time.Time
}

// PlayerCount returns the number of distinct users who submitted the answer.
func (e *AnswerEntry) PlayerCount() int {
	return len(e.Users)
}

// IsRare reports whether at most RareAnswerMaxPlayers distinct users
// submitted the answer that day.
func (e *AnswerEntry) IsRare() bool {
	return len(e.Users) <= RareAnswerMaxPlayers
}

// AnswerIndex maps every normalized answer seen in a valid attempt to the
// distinct users, countries, and regions that submitted it, plus the
// earliest submission. It must be fully built before the rare-answer pass
// and before answer stat construction; after Build it is read-only.
type AnswerIndex struct {
	entries map[string]*AnswerEntry
}

// BuildAnswerIndex runs the structural second pass over the day's events.
// Only valid attempts contribute; marker events carry no answers worth
// indexing.
func BuildAnswerIndex(events []Event) *AnswerIndex {
	idx := &AnswerIndex{entries: make(map[string]*AnswerEntry)}
	for i := range events {
		ev := &events[i]
		if !ev.IsAttempt() {
			continue
		}
		for _, answer := range ev.Submitted {
			idx.observe(answer, ev)
		}
	}
	return idx
}

func (idx *AnswerIndex) observe(answer string, ev *Event) {
	entry, ok := idx.entries[answer]
	if !ok {
		entry = &AnswerEntry{
			Answer:    answer,
			Users:     make(map[string]struct{}),
			Countries: make(map[string]struct{}),
			Regions:   make(map[string]struct{}),
			FirstUser: ev.UserID,
			FirstTime: ev.CreatedAt,
		}
		idx.entries[answer] = entry
	}

	entry.Users[ev.UserID] = struct{}{}
	entry.Countries[ev.Country] = struct{}{}
	entry.Regions[ev.Region] = struct{}{}

	// Zero timestamps come from malformed events and never win first mention.
	if !ev.CreatedAt.IsZero() && (entry.FirstTime.IsZero() || ev.CreatedAt.Before(entry.FirstTime)) {
		entry.FirstUser = ev.UserID
		entry.FirstTime = ev.CreatedAt
	}
}

// Lookup returns the entry for a normalized answer, or nil.
func (idx *AnswerIndex) Lookup(answer string) *AnswerEntry {
	return idx.entries[answer]
}

// Len returns the number of distinct answers indexed.
func (idx *AnswerIndex) Len() int {
	return len(idx.entries)
}

// Ranked returns the entries ordered for answer stat construction:
// descending player count, ties broken by earlier first mention, then by
// answer string for full determinism.
func (idx *AnswerIndex) Ranked() []*AnswerEntry {
	ranked := make([]*AnswerEntry, 0, len(idx.entries))
	for _, entry := range idx.entries {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PlayerCount() != b.PlayerCount() {
			return a.PlayerCount() > b.PlayerCount()
		}
		if !a.FirstTime.Equal(b.FirstTime) {
			return a.FirstTime.Before(b.FirstTime)
		}
		return a.Answer < b.Answer
	})
	return ranked
}
