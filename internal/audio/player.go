package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// playTimeout bounds resolving and playing a single clip.
const playTimeout = 15 * time.Second

// LibraryPlayer implements Player by resolving clips from a ClipSource in
// the background and sending them to a Sink.
type LibraryPlayer struct {
	source ClipSource
	sink   Sink
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ Player = (*LibraryPlayer)(nil)

// NewPlayer creates a LibraryPlayer. A nil sink selects DiscardSink.
func NewPlayer(source ClipSource, sink Sink, logger *slog.Logger) *LibraryPlayer {
	if sink == nil {
		sink = DiscardSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &LibraryPlayer{
		source: source,
		sink:   sink,
		logger: logger.With("component", "audio_player"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Pronounce implements Player.
func (p *LibraryPlayer) Pronounce(text string) {
	p.play("pronounce", text, func(ctx context.Context) (Clip, error) {
		return p.source.Syllable(ctx, text)
	})
}

// PlayCue implements Player.
func (p *LibraryPlayer) PlayCue(cue Cue) {
	p.play("cue", string(cue), func(context.Context) (Clip, error) {
		return p.source.Cue(cue)
	})
}

func (p *LibraryPlayer) play(kind, subject string, resolve func(context.Context) (Clip, error)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(p.ctx, playTimeout)
		defer cancel()

		clip, err := resolve(ctx)
		if err != nil {
			p.logger.DebugContext(ctx, "audio unavailable",
				"kind", kind,
				"subject", subject,
				"error", err)
			return
		}

		if err := p.sink.Play(ctx, clip); err != nil {
			p.logger.DebugContext(ctx, "audio playback failed",
				"kind", kind,
				"clip", clip.Name,
				"error", err)
		}
	}()
}

// Close cancels pending playback and waits for it to finish.
func (p *LibraryPlayer) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}
