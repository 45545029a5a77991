package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/logger"
	"github.com/questday/qotd-backend/internal/metrics"
	"github.com/questday/qotd-backend/internal/repository"
)

// PendingPushResponse lists undelivered push tasks for a date
type PendingPushResponse struct {
	DateKey string            `json:"date_key"`
	Tasks   []domain.PushTask `json:"tasks"`
}

// MarkDeliveredRequest identifies push tasks handed to the delivery subsystem
type MarkDeliveredRequest struct {
	TaskIDs []int64 `json:"task_ids" validate:"required,min=1,max=1000"`
}

// MarkDeliveredResponse reports how many tasks were marked
type MarkDeliveredResponse struct {
	Marked int64 `json:"marked"`
}

// HandleGetPendingPush handles GET requests for undelivered push tasks
// @Summary Get pending push tasks
// @Description List undelivered push tasks queued for a date
// @Tags push
// @Produce json
// @Param date_key query string true "Game day (YYYY-MM-DD)"
// @Success 200 {object} PendingPushResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /push/pending [get]
func HandleGetPendingPush(repo repository.Push) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		dateKey := r.URL.Query().Get("date_key")
		if dateKey == "" {
			log.Warn("Missing date_key query parameter")
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "date_key"))
			return
		}
		if !datekey.Valid(dateKey) {
			log.Warn("Invalid date key", "date_key", dateKey)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidDateKey)
			return
		}

		tasks, err := repo.GetPending(r.Context(), dateKey)
		if err != nil {
			log.Error("Failed to get pending push tasks", "error", err, "date_key", dateKey)
			respondError(w, http.StatusInternalServerError, ErrMsgGetPendingPushFailed)
			return
		}

		log.Info("Pending push tasks retrieved", "date_key", dateKey, "count", len(tasks))

		respondJSON(w, http.StatusOK, PendingPushResponse{DateKey: dateKey, Tasks: tasks})
	}
}

// HandleMarkDelivered handles POST requests acknowledging delivered push tasks
// @Summary Mark push tasks delivered
// @Description Mark a batch of push tasks as handed off for delivery
// @Tags push
// @Accept json
// @Produce json
// @Param request body MarkDeliveredRequest true "Task IDs"
// @Success 200 {object} MarkDeliveredResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /push/mark-delivered [post]
func HandleMarkDelivered(repo repository.Push) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MarkDeliveredRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode mark delivered request", "error", err)
			http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
			return
		}

		if len(req.TaskIDs) == 0 {
			log.Warn("Mark delivered request with no task ids")
			respondError(w, http.StatusBadRequest, ErrMsgNoTaskIDs)
			return
		}

		marked, err := repo.MarkDelivered(r.Context(), req.TaskIDs)
		if err != nil {
			log.Error("Failed to mark push tasks delivered", "error", err, "requested", len(req.TaskIDs))
			respondError(w, http.StatusInternalServerError, ErrMsgMarkDeliveredFailed)
			return
		}

		metrics.PushTasksDelivered.Add(float64(marked))

		log.Info("Push tasks marked delivered", "requested", len(req.TaskIDs), "marked", marked)

		respondJSON(w, http.StatusOK, MarkDeliveredResponse{Marked: marked})
	}
}
