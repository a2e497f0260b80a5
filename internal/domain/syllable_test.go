package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSyllable(t *testing.T) {
	s, err := NewSyllable("ÇÖ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if s.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if s.Text != "ÇÖ" {
		t.Errorf("Expected text %q, got %q", "ÇÖ", s.Text)
	}

	for _, text := range []string{"", "A", "BAK"} {
		if _, err := NewSyllable(text); err != ErrSyllableLength {
			t.Errorf("NewSyllable(%q): expected error %v, got %v", text, ErrSyllableLength, err)
		}
	}
}

func TestFeedbackStateIsValid(t *testing.T) {
	for _, s := range []FeedbackState{FeedbackIdle, FeedbackChecking, FeedbackCorrect, FeedbackWrong} {
		if !s.IsValid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	if FeedbackState("DONE").IsValid() {
		t.Error("Expected unknown state to be invalid")
	}
}
