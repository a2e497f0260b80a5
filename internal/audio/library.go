package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClipSource resolves the clips a Player needs.
type ClipSource interface {
	Syllable(ctx context.Context, text string) (Clip, error)
	Cue(cue Cue) (Clip, error)
}

// Library resolves syllable recordings from a directory, synthesising and
// caching missing ones, and serves the synthesised cues.
type Library struct {
	dir    string
	synth  Synthesizer
	logger *slog.Logger
	group  singleflight.Group
	cues   map[Cue]Clip
}

var _ ClipSource = (*Library)(nil)

// lookupTimeout bounds a shared syllable lookup, which runs detached from the
// context of the request that started it.
const lookupTimeout = 30 * time.Second

// FileName returns the recording file name for text: the Turkish
// lower-case form plus ".mp3", so "Bİ" maps to "bi.mp3" and "BI" to "bı.mp3".
func FileName(text string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(text)) + ".mp3"
}

// NewLibrary creates a Library reading recordings from dir. synth may be nil
// to disable speech synthesis; dir may be empty to disable recordings and
// caching.
func NewLibrary(dir string, synth Synthesizer, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cues := make(map[Cue]Clip, len(cueTones))
	for cue := range cueTones {
		clip, err := CueClip(cue)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesise %s cue: %w", cue, err)
		}
		cues[cue] = clip
	}

	return &Library{
		dir:    dir,
		synth:  synth,
		logger: logger.With("component", "audio_library"),
		cues:   cues,
	}, nil
}

// Cue returns the clip for cue.
func (l *Library) Cue(cue Cue) (Clip, error) {
	clip, ok := l.cues[cue]
	if !ok {
		return Clip{}, fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}
	return clip, nil
}

// Syllable returns the pronunciation clip for text. Concurrent requests for
// the same syllable share one lookup.
func (l *Library) Syllable(ctx context.Context, text string) (Clip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Clip{}, ErrEmptyText
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return Clip{}, fmt.Errorf("%w: %q contains non-letters", ErrClipNotFound, text)
		}
	}

	// The shared lookup outlives any one caller; each caller stops waiting
	// when its own context ends.
	name := FileName(text)
	ch := l.group.DoChan(name, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		return l.loadSyllable(lookupCtx, text, name)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return Clip{}, res.Err
		}
		return res.Val.(Clip), nil
	case <-ctx.Done():
		return Clip{}, ctx.Err()
	}
}

func (l *Library) loadSyllable(ctx context.Context, text, name string) (Clip, error) {
	clip := Clip{Name: name, MIMEType: MIMETypeMP3}

	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err == nil {
			clip.Data = data
			return clip, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Clip{}, fmt.Errorf("failed to read recording %s: %w", name, err)
		}
	}

	if l.synth == nil {
		return Clip{}, fmt.Errorf("%w: %s", ErrClipNotFound, name)
	}

	data, err := l.synth.Synthesize(ctx, text)
	if err != nil {
		return Clip{}, err
	}
	clip.Data = data

	if l.dir != "" {
		if err := l.cache(name, data); err != nil {
			l.logger.WarnContext(ctx, "failed to cache synthesised speech",
				"file", name,
				"error", err)
		}
	}

	return clip, nil
}

// cache writes data atomically so concurrent readers never see a partial file.
func (l *Library) cache(name string, data []byte) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(l.dir, name))
}
