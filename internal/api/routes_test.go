package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SteampunkGill/readmemory/internal/models"
	"github.com/SteampunkGill/readmemory/internal/services"
	"github.com/SteampunkGill/readmemory/internal/testutil/mocks"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	server   *Server
	vocab    *mocks.MockVocabularyRepository
	sessions *mocks.MockSessionRepository
	dict     *mocks.MockDictionaryRepository
	settings *mocks.MockSettingsRepository
	auth     *mocks.MockAuthRepository
}

func newTestEnv() *testEnv {
	vocab := new(mocks.MockVocabularyRepository)
	sessions := new(mocks.MockSessionRepository)
	dict := new(mocks.MockDictionaryRepository)
	settings := new(mocks.MockSettingsRepository)
	auth := new(mocks.MockAuthRepository)

	clock := func() time.Time { return testNow }
	srv := &Server{
		ReviewService:   services.NewReviewService(vocab, sessions, dict, clock),
		ProgressService: services.NewProgressService(vocab, sessions, settings, clock),
		SettingsService: services.NewSettingsService(settings, clock),
		AuthRepo:        auth,
		Clock:           clock,
	}
	return &testEnv{server: srv, vocab: vocab, sessions: sessions, dict: dict, settings: settings, auth: auth}
}

func (e *testEnv) allowToken(token string, userID int64) {
	e.auth.On("UserIDForToken", mock.Anything, token, testNow).Return(userID, nil)
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv()
	handler := env.server.Routes()

	rec := doRequest(t, handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReviewRoutesRequireToken(t *testing.T) {
	env := newTestEnv()
	handler := env.server.Routes()

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/review/due-words", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
}

func TestReviewRoutesRejectExpiredToken(t *testing.T) {
	env := newTestEnv()
	env.auth.On("UserIDForToken", mock.Anything, "stale", testNow).Return(int64(0), nil)
	handler := env.server.Routes()

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/review/due-words", "stale", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDueWordsEndToEnd(t *testing.T) {
	env := newTestEnv()
	env.allowToken("tok-1", 42)

	past := testNow.Add(-time.Hour)
	env.vocab.On("DueWords", mock.Anything, mock.Anything, testNow).
		Return([]models.VocabularyItem{{ID: 7, UserID: 42, Word: "ephemeral", NextReviewDate: &past}}, nil)
	env.vocab.On("CountEligible", mock.Anything, mock.Anything, testNow).Return(3, 1, nil)
	env.dict.On("RandomDistractors", mock.Anything, 50).
		Return([]models.Distractor{{ID: 9, Word: "other", Definition: "something else"}}, nil)

	handler := env.server.Routes()
	rec := doRequest(t, handler, http.MethodGet, "/api/v1/review/due-words?limit=10", "tok-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(1), data["due_count"])

	words, ok := data["words"].([]any)
	require.True(t, ok)
	require.Len(t, words, 1)
	word := words[0].(map[string]any)
	assert.Equal(t, "ephemeral", word["word"])
	assert.Equal(t, "overdue", word["priority"])
}

func TestSubmitSessionRejectsEmptyResults(t *testing.T) {
	env := newTestEnv()
	env.allowToken("tok-1", 42)
	handler := env.server.Routes()

	body := `{"session_id": "round-1", "results": [], "duration": 60, "mode": "flashcard"}`
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/review/submit", "tok-1", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	env.sessions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestSubmitSessionRejectsUnknownFields(t *testing.T) {
	env := newTestEnv()
	env.allowToken("tok-1", 42)
	handler := env.server.Routes()

	body := `{"session_id": "round-1", "bogus": true}`
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/review/submit", "tok-1", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSkipWordPathValidation(t *testing.T) {
	env := newTestEnv()
	env.allowToken("tok-1", 42)
	handler := env.server.Routes()

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/review/skip/abc", "tok-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlanReturnsDefaultsForNewUser(t *testing.T) {
	env := newTestEnv()
	env.allowToken("tok-1", 42)
	env.settings.On("Get", mock.Anything, int64(42)).Return(nil, nil)

	handler := env.server.Routes()
	rec := doRequest(t, handler, http.MethodGet, "/api/v1/review/plan", "tok-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(20), data["daily_target_words"])
	assert.Equal(t, "18:00", data["preferred_time"])
}

func TestRequestIDPropagated(t *testing.T) {
	env := newTestEnv()
	handler := env.server.Routes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
