package api

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/audio"
)

// clipCacheControl lets clients reuse clips; recordings and cue tones never
// change for a given name.
const clipCacheControl = "public, max-age=86400"

// AudioHandler serves pronunciation clips and cue tones to the client.
type AudioHandler struct {
	clips  audio.ClipSource
	logger *slog.Logger
}

// NewAudioHandler creates an AudioHandler.
func NewAudioHandler(clips audio.ClipSource, logger *slog.Logger) *AudioHandler {
	if clips == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("clip source cannot be nil for AudioHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioHandler{
		clips:  clips,
		logger: logger.With(slog.String("component", "audio_handler")),
	}
}

// Syllable handles GET /api/audio/syllables/{text}.
func (h *AudioHandler) Syllable(w http.ResponseWriter, r *http.Request) {
	text, err := url.PathUnescape(chi.URLParam(r, "text"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid syllable")
		return
	}

	clip, err := h.clips.Syllable(r.Context(), text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.respondClip(w, r, clip)
}

// Cue handles GET /api/audio/cues/{cue}.
func (h *AudioHandler) Cue(w http.ResponseWriter, r *http.Request) {
	cue, err := audio.ParseCue(chi.URLParam(r, "cue"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	clip, err := h.clips.Cue(cue)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.respondClip(w, r, clip)
}

func (h *AudioHandler) respondClip(w http.ResponseWriter, r *http.Request, clip audio.Clip) {
	w.Header().Set("Cache-Control", clipCacheControl)
	shared.RespondWithBytes(w, r, http.StatusOK, clip.MIMEType, clip.Data)
}
