package session

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/events"
)

// Paths under which the HTTP API serves audio clips.
const (
	SyllableAudioPath = "/api/audio/syllables/"
	CueAudioPath      = "/api/audio/cues/"
)

// AnnouncingPlayer tells a session's client which clip to play by emitting
// an EventAudio, then forwards the request to the server-side player so the
// clip is resolved and cached before the client asks for it.
type AnnouncingPlayer struct {
	next      audio.Player
	emitter   events.EventEmitter
	sessionID uuid.UUID
	logger    *slog.Logger
}

var _ audio.Player = (*AnnouncingPlayer)(nil)

// NewAnnouncingPlayer creates an AnnouncingPlayer. A nil next selects
// audio.NopPlayer.
func NewAnnouncingPlayer(
	next audio.Player,
	emitter events.EventEmitter,
	sessionID uuid.UUID,
	logger *slog.Logger,
) *AnnouncingPlayer {
	if next == nil {
		next = audio.NopPlayer{}
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnouncingPlayer{
		next:      next,
		emitter:   emitter,
		sessionID: sessionID,
		logger:    logger,
	}
}

// Pronounce implements audio.Player.
func (p *AnnouncingPlayer) Pronounce(text string) {
	p.announce(AudioPayload{
		Name:     audio.FileName(text),
		MIMEType: audio.MIMETypeMP3,
		URL:      SyllableAudioPath + url.PathEscape(text),
	})
	p.next.Pronounce(text)
}

// PlayCue implements audio.Player.
func (p *AnnouncingPlayer) PlayCue(cue audio.Cue) {
	p.announce(AudioPayload{
		Name:     string(cue),
		MIMEType: audio.MIMETypeWAV,
		URL:      CueAudioPath + url.PathEscape(string(cue)),
	})
	p.next.PlayCue(cue)
}

func (p *AnnouncingPlayer) announce(payload AudioPayload) {
	event, err := events.NewEvent(EventAudio, p.sessionID, payload)
	if err == nil {
		err = p.emitter.EmitEvent(context.Background(), event)
	}
	if err != nil {
		p.logger.Warn("failed to announce audio", "clip", payload.Name, "error", err)
	}
}
