package audio

import (
	"context"
	"fmt"
)

// MIME types of the clips produced by this package.
const (
	MIMETypeMP3 = "audio/mpeg"
	MIMETypeWAV = "audio/wav"
)

// Cue identifies a short feedback sound.
type Cue string

// Feedback cues.
const (
	CueCorrect Cue = "correct"
	CueWrong   Cue = "wrong"
	CueSkip    Cue = "skip"
)

// IsValid reports whether c is a known cue.
func (c Cue) IsValid() bool {
	switch c {
	case CueCorrect, CueWrong, CueSkip:
		return true
	}
	return false
}

// ParseCue converts s to a Cue.
func ParseCue(s string) (Cue, error) {
	c := Cue(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCue, s)
	}
	return c, nil
}

// Clip is an encoded sound ready for playback.
type Clip struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Sink plays clips on some output device.
type Sink interface {
	Play(ctx context.Context, clip Clip) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, clip Clip) error

// Play calls f(ctx, clip).
func (f SinkFunc) Play(ctx context.Context, clip Clip) error {
	return f(ctx, clip)
}

// DiscardSink drops every clip.
type DiscardSink struct{}

// Play implements Sink.
func (DiscardSink) Play(context.Context, Clip) error { return nil }

// Player is the fire-and-forget audio capability used by a practice session.
type Player interface {
	// Pronounce speaks text. It returns immediately.
	Pronounce(text string)

	// PlayCue plays a feedback cue. It returns immediately.
	PlayCue(cue Cue)
}

// NopPlayer ignores every request.
type NopPlayer struct{}

// Pronounce implements Player.
func (NopPlayer) Pronounce(string) {}

// PlayCue implements Player.
func (NopPlayer) PlayCue(Cue) {}
