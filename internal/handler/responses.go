package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/questday/qotd-backend/internal/analytics"
	"github.com/questday/qotd-backend/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError maps domain errors to HTTP status codes and
// user-facing messages. Internal error text never leaks to clients.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateKey):
		return http.StatusBadRequest, ErrMsgInvalidDateKey
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundHTTP
	case errors.Is(err, analytics.ErrNoAggregate):
		return http.StatusNotFound, ErrMsgDayNotAggregated
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
