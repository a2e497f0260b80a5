package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/mocks"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/platform/memory"
	"github.com/phrazzld/hececiz/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "debug",
			ShutdownTimeout: 5 * time.Second,
		},
		Classifier: config.ClassifierConfig{
			GeminiAPIKey: "test-key",
			ModelName:    "gemini-2.0-flash",
			Timeout:      time.Second,
		},
		Audio: config.AudioConfig{
			TTSLanguage: "tr",
		},
		Session: config.SessionConfig{
			AudioDelay:   500 * time.Millisecond,
			CorrectDelay: 2500 * time.Millisecond,
			WrongDelay:   1500 * time.Millisecond,
			CanvasWidth:  400,
			CanvasHeight: 300,
			PixelRatio:   1,
			MaxSessions:  4,
			IdleTimeout:  time.Minute,
			SweepSpec:    "@every 1m",
		},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	_, log := logger.NewTestLogger(t)
	app, err := assembleApplication(testConfig(), log, nil, memory.NewProfileStore(log),
		mocks.NewMockClassifierWithVerdict(true, ""))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, app.cleanup(context.Background()))
	})
	return app
}

func serve(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestAssembleApplicationRejectsBadSessionConfig(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	cfg := testConfig()
	cfg.Session.SweepSpec = "every now and then"

	_, err := assembleApplication(cfg, log, nil, memory.NewProfileStore(log),
		mocks.NewMockClassifierWithVerdict(true, ""))
	assert.Error(t, err)
}

func TestRouterHealth(t *testing.T) {
	router := newTestApplication(t).setupRouter()

	rec := serve(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))
}

func TestRouterPracticeFlow(t *testing.T) {
	app := newTestApplication(t)
	router := app.setupRouter()

	rec := serve(t, router, http.MethodPost, "/api/profiles", map[string]string{"name": "Zeynep"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))

	rec = serve(t, router, http.MethodPost, "/api/sessions", map[string]string{"profile_id": profile.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var state session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.NotNil(t, state.Profile)

	base := "/api/sessions/" + state.SessionID.String()

	rec = serve(t, router, http.MethodPost, base+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(t, router, http.MethodGet, base+"/events", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, router, http.MethodGet, "/api/audio/cues/correct", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/wav", rec.Header().Get("Content-Type"))

	rec = serve(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, app.sessions.Len())
}

func TestCleanupIsSafeWithoutDatabase(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	app := &application{config: testConfig(), logger: log}
	assert.NoError(t, app.cleanup(context.Background()))
}

func TestRunMigrationsValidatesInput(t *testing.T) {
	_, log := logger.NewTestLogger(t)
	cfg := testConfig()

	err := runMigrations(context.Background(), cfg, "sideways", log)
	assert.ErrorContains(t, err, "unknown migration command")

	err = runMigrations(context.Background(), cfg, "up", log)
	assert.ErrorContains(t, err, "database.url is required")
}
