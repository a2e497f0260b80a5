package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// doJSON sends a request with an optional JSON body through router.
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func newProfileRouter(h *ProfileHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/profiles", h.ListProfiles)
	r.Post("/api/profiles", h.CreateProfile)
	r.Get("/api/profiles/{id}", h.GetProfile)
	r.Delete("/api/profiles/{id}", h.DeleteProfile)
	return r
}

func newSessionRouter(h *SessionHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/sessions", h.StartSession)
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.EndSession)
		r.Post("/strokes", h.Stroke)
		r.Post("/resize", h.Resize)
		r.Post("/clear", h.Clear)
		r.Post("/skip", h.Skip)
		r.Post("/submit", h.Submit)
		r.Post("/audio", h.ReplayAudio)
		r.Post("/hint", h.SetHint)
		r.Post("/tool", h.SetTool)
		r.Get("/snapshot", h.Snapshot)
		r.Get("/events", h.Events)
	})
	return r
}
