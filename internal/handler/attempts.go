package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/logger"
	"github.com/questday/qotd-backend/internal/metrics"
	"github.com/questday/qotd-backend/internal/repository"
)

// LogAttemptRequest represents a request to append one attempt event.
// The answer lists are kept as raw JSON exactly as submitted; the
// aggregation normalizer parses them tolerantly at read time.
type LogAttemptRequest struct {
	UserID       string          `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	DateKey      string          `json:"date_key" validate:"required,datekey"`
	WindowID     string          `json:"window_id" validate:"max=50"`
	AttemptIndex int             `json:"attempt_index" validate:"attemptindex"`
	Result       string          `json:"result" validate:"required,oneof=attempt success lockout exit-early hint-used"`
	Answers      json.RawMessage `json:"answers,omitempty"`
	Correct      json.RawMessage `json:"correct,omitempty"`
	Incorrect    json.RawMessage `json:"incorrect,omitempty"`
	Country      string          `json:"country" validate:"max=10"`
}

// HandleLogAttempt handles POST requests to append attempt events
// @Summary Log attempt
// @Description Append one immutable attempt event to the daily log
// @Tags attempts
// @Accept json
// @Produce json
// @Param request body LogAttemptRequest true "Attempt details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /attempts [post]
func HandleLogAttempt(repo repository.Attempt) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LogAttemptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode log attempt request", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		log.Debug("Log attempt request",
			"user_id", req.UserID,
			"date_key", req.DateKey,
			"attempt_index", req.AttemptIndex,
			"result", req.Result)

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			http.Error(w, fmt.Sprintf("%s: %v", ErrMsgInvalidRequestSummary, FormatValidationError(err)), http.StatusBadRequest)
			return
		}

		event := &domain.AttemptEvent{
			UserID:        req.UserID,
			DateKey:       req.DateKey,
			WindowID:      req.WindowID,
			AttemptIndex:  req.AttemptIndex,
			Result:        domain.AttemptResult(req.Result),
			AnswersJSON:   string(req.Answers),
			CorrectJSON:   string(req.Correct),
			IncorrectJSON: string(req.Incorrect),
			Country:       req.Country,
			CreatedAt:     time.Now().UTC(),
		}

		if err := repo.InsertEvent(r.Context(), event); err != nil {
			log.Error("Failed to insert attempt event", "error", err, "user_id", req.UserID, "date_key", req.DateKey)
			http.Error(w, ErrMsgLogAttemptFailed, http.StatusInternalServerError)
			return
		}

		metrics.AttemptEventsLogged.Inc()

		log.Info("Attempt event logged", "user_id", req.UserID, "date_key", req.DateKey, "result", req.Result)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAttemptLoggedSuccess})
	}
}
