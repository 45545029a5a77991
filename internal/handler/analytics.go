package handler

import (
	"fmt"
	"net/http"

	"github.com/questday/qotd-backend/internal/analytics"
	"github.com/questday/qotd-backend/internal/logger"
)

// HandleGetUserAnalytics handles GET requests for a user's analytics view
// @Summary Get user analytics
// @Description Get one user's daily profile, lifetime record and badges for a date
// @Tags analytics
// @Produce json
// @Param user_id query string true "User ID"
// @Param date_key query string true "Game day (YYYY-MM-DD)"
// @Success 200 {object} analytics.UserAnalytics
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/user [get]
func HandleGetUserAnalytics(svc analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			log.Warn("Missing user_id query parameter")
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}

		dateKey := r.URL.Query().Get("date_key")
		if dateKey == "" {
			log.Warn("Missing date_key query parameter")
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "date_key"))
			return
		}

		log.Debug("Get user analytics request", "user_id", userID, "date_key", dateKey)

		view, err := svc.GetUserAnalytics(r.Context(), userID, dateKey)
		if err != nil {
			status, msg := mapServiceError(err)
			if status == http.StatusInternalServerError {
				log.Error("Failed to get user analytics", "error", err, "user_id", userID)
				msg = ErrMsgGetUserAnalyticsFailed
			}
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// HandleGetGlobalAnalytics handles GET requests for the global daily view
// @Summary Get global analytics
// @Description Get the global rollup, per-region stats and top answers for a date
// @Tags analytics
// @Produce json
// @Param date_key query string true "Game day (YYYY-MM-DD)"
// @Success 200 {object} analytics.GlobalAnalytics
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/global [get]
func HandleGetGlobalAnalytics(svc analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		dateKey := r.URL.Query().Get("date_key")
		if dateKey == "" {
			log.Warn("Missing date_key query parameter")
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "date_key"))
			return
		}

		log.Debug("Get global analytics request", "date_key", dateKey)

		view, err := svc.GetGlobalAnalytics(r.Context(), dateKey)
		if err != nil {
			status, msg := mapServiceError(err)
			if status == http.StatusInternalServerError {
				log.Error("Failed to get global analytics", "error", err, "date_key", dateKey)
				msg = ErrMsgGetGlobalAnalyticsFailed
			}
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}
