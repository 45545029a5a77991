// Package aggregation implements the daily metrics pipeline: it reads one
// day's attempt events and produces per-user profiles, global and regional
// rollups, an answer frequency table, badges, cohort retention snapshots,
// and push targeting tasks. Every write path is keyed upsert, so a run can
// be repeated for the same date without duplicating rows.
package aggregation

import (
	"time"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/geo"
	"github.com/questday/qotd-backend/internal/normalize"
)

// Event is the canonical in-memory form of one attempt event. List
// fields are parsed tolerantly: a malformed JSON payload yields empty
// slices, never an error, so one bad event cannot abort the run.
type Event struct {
	UserID       string
	AttemptIndex int
	Result       domain.AttemptResult
	Submitted    []string
	Correct      []string
	Incorrect    []string
	Country      string
	Region       string
	CreatedAt    time.Time
}

// IsAttempt reports whether the event is a real attempt rather than a
// hint or summary marker.
func (e *Event) IsAttempt() bool {
	return e.AttemptIndex >= domain.MinAttemptIndex && e.AttemptIndex <= domain.MaxAttemptIndex
}

// IsHint reports whether the event records a hint usage.
func (e *Event) IsHint() bool {
	return e.AttemptIndex == domain.HintMarkerIndex || e.Result == domain.ResultHintUsed
}

// NormalizeEvent converts a raw stored event into canonical form:
// answers trimmed, lowercased, and whitespace-collapsed; country folded
// to lowercase ISO form with the unknown placeholder for blanks; region
// resolved from the country.
func NormalizeEvent(raw *domain.AttemptEvent) Event {
	country := geo.NormalizeCountry(raw.Country)
	return Event{
		UserID:       raw.UserID,
		AttemptIndex: raw.AttemptIndex,
		Result:       raw.Result,
		Submitted:    normalize.AnswerList(raw.AnswersJSON),
		Correct:      normalize.AnswerList(raw.CorrectJSON),
		Incorrect:    normalize.AnswerList(raw.IncorrectJSON),
		Country:      country,
		Region:       geo.Region(country),
		CreatedAt:    raw.CreatedAt,
	}
}

// NormalizeEvents converts a day's raw events, dropping events with no
// user ID (unattributable rows cannot feed any per-user metric).
func NormalizeEvents(raw []domain.AttemptEvent) []Event {
	events := make([]Event, 0, len(raw))
	for i := range raw {
		if raw[i].UserID == "" {
			continue
		}
		events = append(events, NormalizeEvent(&raw[i]))
	}
	return events
}
