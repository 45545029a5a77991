package domain

import "time"

// AttemptResult tags the outcome recorded with an attempt event
type AttemptResult string

const (
	ResultAttempt   AttemptResult = "attempt"
	ResultSuccess   AttemptResult = "success"
	ResultLockout   AttemptResult = "lockout"
	ResultExitEarly AttemptResult = "exit-early"
	ResultHintUsed  AttemptResult = "hint-used"
)

// Reserved attempt indices. Real attempts use indices within
// [MinAttemptIndex, MaxAttemptIndex]; markers sit outside that range so
// they are excluded from attempt counting.
const (
	MinAttemptIndex    = 1
	MaxAttemptIndex    = 3
	HintMarkerIndex    = 998
	SummaryMarkerIndex = 999
)

// AttemptEvent is one immutable row of the attempt log. List fields are
// stored as raw JSON text exactly as the client submitted them; the
// aggregation normalizer is responsible for parsing them tolerantly.
type AttemptEvent struct {
	ID            int64         `json:"id"`
	UserID        string        `json:"user_id"`
	DateKey       string        `json:"date_key"`
	WindowID      string        `json:"window_id"`
	AttemptIndex  int           `json:"attempt_index"`
	Result        AttemptResult `json:"result"`
	AnswersJSON   string        `json:"answers_json,omitempty"`
	CorrectJSON   string        `json:"correct_json,omitempty"`
	IncorrectJSON string        `json:"incorrect_json,omitempty"`
	Country       string        `json:"country"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsMarker reports whether the event is a hint or summary marker rather
// than a real attempt.
func (e *AttemptEvent) IsMarker() bool {
	return e.AttemptIndex < MinAttemptIndex || e.AttemptIndex > MaxAttemptIndex
}

// IsHint reports whether the event records a hint usage.
func (e *AttemptEvent) IsHint() bool {
	return e.AttemptIndex == HintMarkerIndex || e.Result == ResultHintUsed
}
