package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"title": "hello"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hello", body["title"])
}

func TestRespondWithError(t *testing.T) {
	t.Run("error_envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Task not found", body["error"])
	})

	t.Run("includes_trace_id_when_present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body["trace_id"], 32)
	})

	t.Run("omits_trace_id_when_absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()

	internal := errors.New("pq: relation tasks does not exist")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to list tasks", internal)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// only the sanitized message reaches the client
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to list tasks", body["error"])
	assert.NotContains(t, rec.Body.String(), "relation tasks")
}

func TestUserContext(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		user, ok := UserFromContext(req.Context())
		assert.False(t, ok)
		assert.Nil(t, user)
	})
}

func TestTraceID(t *testing.T) {
	ctx := SetTraceID(httptest.NewRequest(http.MethodGet, "/", nil).Context())

	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 32)

	// a second context gets a different ID
	other := GetTraceID(SetTraceID(ctx))
	assert.NotEqual(t, traceID, other)
}
