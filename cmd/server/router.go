package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/hececiz/internal/api"
	apiMiddleware "github.com/phrazzld/hececiz/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	healthHandler := api.NewHealthHandler(pinger, app.logger)
	profileHandler := api.NewProfileHandler(app.profiles, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessions, app.journal, app.logger)
	audioHandler := api.NewAudioHandler(app.clips, app.logger)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", profileHandler.ListProfiles)
		r.Post("/profiles", profileHandler.CreateProfile)
		r.Get("/profiles/{id}", profileHandler.GetProfile)
		r.Delete("/profiles/{id}", profileHandler.DeleteProfile)

		r.Post("/sessions", sessionHandler.StartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.EndSession)
			r.Post("/strokes", sessionHandler.Stroke)
			r.Post("/resize", sessionHandler.Resize)
			r.Post("/clear", sessionHandler.Clear)
			r.Post("/skip", sessionHandler.Skip)
			r.Post("/submit", sessionHandler.Submit)
			r.Post("/audio", sessionHandler.ReplayAudio)
			r.Post("/hint", sessionHandler.SetHint)
			r.Post("/tool", sessionHandler.SetTool)
			r.Get("/snapshot", sessionHandler.Snapshot)
			r.Get("/events", sessionHandler.Events)
		})

		r.Get("/audio/syllables/{text}", audioHandler.Syllable)
		r.Get("/audio/cues/{cue}", audioHandler.Cue)
	})

	return r
}
