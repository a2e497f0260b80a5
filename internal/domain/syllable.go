package domain

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Syllable-specific validation errors
var (
	// ErrSyllableIDEmpty is returned when a syllable has a nil ID.
	ErrSyllableIDEmpty = errors.New("syllable ID cannot be empty")

	// ErrSyllableLength is returned when a syllable's text is not exactly two characters.
	ErrSyllableLength = errors.New("syllable text must be exactly two characters")
)

// Syllable is a two-character unit of practice, either consonant+vowel or
// vowel+consonant. It is immutable once generated.
type Syllable struct {
	Text string    `json:"text"`
	ID   uuid.UUID `json:"id"`
}

// NewSyllable creates a Syllable with a fresh ID.
func NewSyllable(text string) (Syllable, error) {
	s := Syllable{Text: text, ID: uuid.New()}
	if err := s.Validate(); err != nil {
		return Syllable{}, err
	}
	return s, nil
}

// Validate checks the syllable's invariants.
func (s Syllable) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSyllableIDEmpty
	}
	if utf8.RuneCountInString(s.Text) != 2 {
		return ErrSyllableLength
	}
	return nil
}
