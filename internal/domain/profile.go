package domain

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Profile-specific validation errors
var (
	// ErrProfileIDEmpty is returned when a profile ID is nil.
	ErrProfileIDEmpty = errors.New("profile ID cannot be empty")

	// ErrProfileNameEmpty is returned when a profile name is blank.
	ErrProfileNameEmpty = errors.New("profile name cannot be empty")

	// ErrProfileNameTooLong is returned when a profile name exceeds MaxProfileNameLength runes.
	ErrProfileNameTooLong = errors.New("profile name is too long")

	// ErrProfileNegativeTotals is returned when a progress counter is negative.
	ErrProfileNegativeTotals = errors.New("profile totals cannot be negative")

	// ErrInvalidProgressBucket is returned for an unknown progress bucket.
	ErrInvalidProgressBucket = errors.New("invalid progress bucket")
)

// MaxProfileNameLength is the longest accepted learner name, in runes.
const MaxProfileNameLength = 40

// Avatars is the fixed set a new profile's avatar is drawn from.
var Avatars = []string{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵"}

// ProgressBucket names the counter a correct answer is credited to.
type ProgressBucket string

const (
	// BucketAudio counts answers given from the pronunciation alone.
	BucketAudio ProgressBucket = "audio"

	// BucketHint counts answers given after the learner revealed the hint.
	BucketHint ProgressBucket = "hint"
)

// IsValid reports whether b is a known bucket.
func (b ProgressBucket) IsValid() bool {
	return b == BucketAudio || b == BucketHint
}

// BucketFor returns the bucket a success is credited to given whether the
// learner peeked at the hint during the turn.
func BucketFor(assisted bool) ProgressBucket {
	if assisted {
		return BucketHint
	}
	return BucketAudio
}

// Profile is a durable learner record. The practice session never mutates it
// directly; it asks the profile store for an atomic increment instead.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Avatar            string    `json:"avatar"`
	TotalCorrectAudio int       `json:"total_correct_audio"`
	TotalCorrectHint  int       `json:"total_correct_hint"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewProfile creates a profile with a fresh ID, a random avatar and zeroed counters.
func NewProfile(name string) (*Profile, error) {
	p := &Profile{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Avatar:    Avatars[rand.IntN(len(Avatars))],
		CreatedAt: time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrProfileNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxProfileNameLength {
		return ErrProfileNameTooLong
	}

	if p.TotalCorrectAudio < 0 || p.TotalCorrectHint < 0 {
		return ErrProfileNegativeTotals
	}

	return nil
}

// Increment returns a copy of the profile with the given bucket bumped by one.
func (p Profile) Increment(bucket ProgressBucket) (Profile, error) {
	switch bucket {
	case BucketAudio:
		p.TotalCorrectAudio++
	case BucketHint:
		p.TotalCorrectHint++
	default:
		return p, ErrInvalidProgressBucket
	}
	return p, nil
}
