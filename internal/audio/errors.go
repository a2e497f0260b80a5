package audio

import "errors"

var (
	// ErrUnknownCue is returned for a cue name that is not defined.
	ErrUnknownCue = errors.New("unknown cue")

	// ErrClipNotFound is returned when no recording exists for a syllable
	// and speech synthesis is unavailable.
	ErrClipNotFound = errors.New("audio clip not found")

	// ErrEmptyText is returned when asked to pronounce nothing.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrSynthesis is returned when the speech service fails.
	ErrSynthesis = errors.New("speech synthesis failed")
)
