package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/events"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/session"
)

// SessionManager is the part of session.Manager the handler uses.
type SessionManager interface {
	Start(ctx context.Context, req session.StartRequest) (*session.Controller, error)
	Get(id uuid.UUID) (*session.Controller, error)
	End(ctx context.Context, id uuid.UUID) error
}

// EventLog returns the journaled events of a session.
type EventLog interface {
	Since(sessionID uuid.UUID, after int) []events.Entry
}

// SessionHandler serves the practice session endpoints.
type SessionHandler struct {
	sessions SessionManager
	events   EventLog
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessions SessionManager, eventLog EventLog, logger *slog.Logger) *SessionHandler {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("session manager cannot be nil for SessionHandler")
	}
	if eventLog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("event log cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		events:   eventLog,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// session resolves the {id} path parameter, writing an error response and
// returning false on failure.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	ctrl, err := h.sessions.Get(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return ctrl, true
}

// StartSession handles POST /api/sessions. The body may be empty.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	ctrl, err := h.sessions.Start(r.Context(), session.StartRequest{
		ProfileID:  req.ProfileID,
		Width:      req.Width,
		Height:     req.Height,
		PixelRatio: req.PixelRatio,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("session created", slog.String("session_id", ctrl.ID().String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ctrl.State())
}

// GetSession handles GET /api/sessions/{id}.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ctrl.State())
}

// EndSession handles DELETE /api/sessions/{id}.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.sessions.End(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stroke handles POST /api/sessions/{id}/strokes.
func (h *SessionHandler) Stroke(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	var req StrokeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	err := ctrl.Stroke(session.Stroke{
		Tool:   domain.Tool(req.Tool),
		Bounds: req.Bounds,
		Points: req.Points,
		Leave:  req.Leave,
	})
	h.respondState(w, r, ctrl, err, http.StatusOK)
}

// Resize handles POST /api/sessions/{id}/resize.
func (h *SessionHandler) Resize(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ResizeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	resized, err := ctrl.Resize(req.Width, req.Height, req.PixelRatio)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ResizeResponse{Resized: resized, State: ctrl.State()})
}

// Clear handles POST /api/sessions/{id}/clear.
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondState(w, r, ctrl, ctrl.Clear(), http.StatusOK)
}

// Skip handles POST /api/sessions/{id}/skip.
func (h *SessionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondState(w, r, ctrl, ctrl.Skip(), http.StatusOK)
}

// Submit handles POST /api/sessions/{id}/submit. The verdict arrives later
// as session events, so a successful submit answers 202.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondState(w, r, ctrl, ctrl.Submit(), http.StatusAccepted)
}

// ReplayAudio handles POST /api/sessions/{id}/audio.
func (h *SessionHandler) ReplayAudio(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respondState(w, r, ctrl, ctrl.ReplayAudio(), http.StatusAccepted)
}

// SetHint handles POST /api/sessions/{id}/hint.
func (h *SessionHandler) SetHint(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	var req HintRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respondState(w, r, ctrl, ctrl.SetHint(*req.Visible), http.StatusOK)
}

// SetTool handles POST /api/sessions/{id}/tool.
func (h *SessionHandler) SetTool(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ToolRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	h.respondState(w, r, ctrl, ctrl.SetTool(domain.Tool(req.Tool)), http.StatusOK)
}

// Snapshot handles GET /api/sessions/{id}/snapshot. An empty surface
// answers 204.
func (h *SessionHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	snap, err := ctrl.Snapshot()
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export drawing")
		return
	}
	if snap == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	shared.RespondWithBytes(w, r, http.StatusOK, snap.MIMEType, snap.Data)
}

// Events handles GET /api/sessions/{id}/events?after=N.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.session(w, r)
	if !ok {
		return
	}

	after := 0
	if raw := r.URL.Query().Get("after"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid after parameter")
			return
		}
		after = n
	}

	entries := h.events.Since(ctrl.ID(), after)
	next := after
	if len(entries) > 0 {
		next = entries[len(entries)-1].Seq
	}
	shared.RespondWithJSON(w, r, http.StatusOK, EventsResponse{Events: entries, Next: next})
}

// respondState answers with the controller state, or with the mapped error.
func (h *SessionHandler) respondState(
	w http.ResponseWriter,
	r *http.Request,
	ctrl *session.Controller,
	err error,
	status int,
) {
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, status, ctrl.State())
}
