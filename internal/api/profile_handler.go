package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/store"
)

// ProfileHandler serves the learner profile endpoints.
type ProfileHandler struct {
	profiles store.ProfileStore
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles store.ProfileStore, logger *slog.Logger) *ProfileHandler {
	if profiles == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("profile store cannot be nil for ProfileHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.With(slog.String("component", "profile_handler")),
	}
}

// ListProfiles handles GET /api/profiles.
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	response := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, profileToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateProfile handles POST /api/profiles.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	profile, err := h.profiles.Create(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("profile created", slog.String("profile_id", profile.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, profileToResponse(profile))
}

// GetProfile handles GET /api/profiles/{id}.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, profileToResponse(profile))
}

// DeleteProfile handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.profiles.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("profile deleted", slog.String("profile_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
