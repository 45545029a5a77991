package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/questday/qotd-backend/internal/aggregation"
	"github.com/questday/qotd-backend/internal/analytics"
	"github.com/questday/qotd-backend/internal/datekey"
	"github.com/questday/qotd-backend/internal/domain"
	"github.com/questday/qotd-backend/internal/logger"
)

// HandleRunAggregation handles POST requests that trigger a daily
// aggregation run. Without a date_key query parameter the run targets
// yesterday in the reference timezone, which is what the scheduled
// trigger wants shortly after the daily window closes.
// @Summary Run daily aggregation
// @Description Aggregate one game day into profiles, rollups, streaks, badges, cohorts and push tasks
// @Tags aggregation
// @Produce json
// @Param date_key query string false "Game day (YYYY-MM-DD), defaults to yesterday"
// @Success 200 {object} aggregation.RunSummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /aggregate [post]
func HandleRunAggregation(svc aggregation.Service, analyticsSvc analytics.Service, refLoc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		dateKey := r.URL.Query().Get("date_key")
		if dateKey == "" {
			dateKey = datekey.Yesterday(refLoc)
		}

		log.Info("Aggregation run requested", "date_key", dateKey)

		summary, err := svc.Run(r.Context(), dateKey)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidDateKey) {
				log.Warn("Invalid date key", "date_key", dateKey)
				respondError(w, http.StatusBadRequest, ErrMsgInvalidDateKey)
				return
			}
			log.Error("Aggregation run failed", "error", err, "date_key", dateKey)
			respondError(w, http.StatusInternalServerError, ErrMsgAggregationFailed)
			return
		}

		// Re-running a day rewrites its rollups, so cached analytics for
		// that day are stale from here on.
		analyticsSvc.InvalidateDay(dateKey)

		respondJSON(w, http.StatusOK, summary)
	}
}
