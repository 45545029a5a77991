package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questday/qotd-backend/internal/domain"
)

// mockAttemptRepo records inserted events for assertions
type mockAttemptRepo struct {
	inserted  []*domain.AttemptEvent
	insertErr error
}

func (m *mockAttemptRepo) InsertEvent(_ context.Context, event *domain.AttemptEvent) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, event)
	return nil
}

func (m *mockAttemptRepo) GetEventsByDate(context.Context, string, int) ([]domain.AttemptEvent, error) {
	return nil, nil
}

func TestHandleLogAttempt(t *testing.T) {
	t.Run("Valid Attempt", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		body := `{
			"user_id": "u1",
			"date_key": "2026-03-14",
			"window_id": "w-314",
			"attempt_index": 1,
			"result": "success",
			"answers": ["paris", "lyon"],
			"correct": ["paris"],
			"incorrect": ["lyon"],
			"country": "fr"
		}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, repo.inserted, 1)
		ev := repo.inserted[0]
		assert.Equal(t, "u1", ev.UserID)
		assert.Equal(t, "2026-03-14", ev.DateKey)
		assert.Equal(t, domain.ResultSuccess, ev.Result)
		assert.JSONEq(t, `["paris","lyon"]`, ev.AnswersJSON)
		assert.JSONEq(t, `["paris"]`, ev.CorrectJSON)
		assert.False(t, ev.CreatedAt.IsZero())
	})

	t.Run("Hint Marker Accepted", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		body := `{"user_id":"u1","date_key":"2026-03-14","attempt_index":998,"result":"hint-used"}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, repo.inserted, 1)
		assert.Equal(t, domain.HintMarkerIndex, repo.inserted[0].AttemptIndex)
	})

	t.Run("Invalid JSON Body", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.inserted)
	})

	t.Run("Bad Date Key", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		body := `{"user_id":"u1","date_key":"14/03/2026","attempt_index":1,"result":"attempt"}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.inserted)
	})

	t.Run("Out Of Range Attempt Index", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		body := `{"user_id":"u1","date_key":"2026-03-14","attempt_index":7,"result":"attempt"}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.inserted)
	})

	t.Run("Unknown Result", func(t *testing.T) {
		repo := &mockAttemptRepo{}
		body := `{"user_id":"u1","date_key":"2026-03-14","attempt_index":1,"result":"maybe"}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Repository Error", func(t *testing.T) {
		repo := &mockAttemptRepo{insertErr: assert.AnError}
		body := `{"user_id":"u1","date_key":"2026-03-14","attempt_index":1,"result":"attempt"}`
		req := httptest.NewRequest("POST", "/api/v1/attempts", strings.NewReader(body))
		w := httptest.NewRecorder()

		HandleLogAttempt(repo).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgLogAttemptFailed)
	})
}
