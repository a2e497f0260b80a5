package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewProfile(t *testing.T) {
	profile, err := NewProfile("  Ayşe  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if profile.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if profile.Name != "Ayşe" {
		t.Errorf("Expected trimmed name %q, got %q", "Ayşe", profile.Name)
	}

	found := false
	for _, a := range Avatars {
		if a == profile.Avatar {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected avatar from the fixed set, got %q", profile.Avatar)
	}

	if profile.TotalCorrectAudio != 0 || profile.TotalCorrectHint != 0 {
		t.Error("Expected zeroed counters")
	}

	if profile.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if _, err := NewProfile("   "); !errors.Is(err, ErrProfileNameEmpty) {
		t.Errorf("Expected error %v, got %v", ErrProfileNameEmpty, err)
	}

	if _, err := NewProfile(strings.Repeat("ş", MaxProfileNameLength+1)); !errors.Is(err, ErrProfileNameTooLong) {
		t.Errorf("Expected error %v, got %v", ErrProfileNameTooLong, err)
	}
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{ID: uuid.New(), Name: "Can"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	noID := valid
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrProfileIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrProfileIDEmpty, err)
	}

	negative := valid
	negative.TotalCorrectHint = -1
	if err := negative.Validate(); err != ErrProfileNegativeTotals {
		t.Errorf("Expected error %v, got %v", ErrProfileNegativeTotals, err)
	}
}

func TestProfileIncrement(t *testing.T) {
	p := Profile{ID: uuid.New(), Name: "Can", TotalCorrectAudio: 2, TotalCorrectHint: 5}

	audio, err := p.Increment(BucketAudio)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if audio.TotalCorrectAudio != 3 || audio.TotalCorrectHint != 5 {
		t.Errorf("Unexpected totals after audio increment: %+v", audio)
	}

	hint, err := p.Increment(BucketHint)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hint.TotalCorrectAudio != 2 || hint.TotalCorrectHint != 6 {
		t.Errorf("Unexpected totals after hint increment: %+v", hint)
	}

	if p.TotalCorrectAudio != 2 {
		t.Error("Increment must not mutate the receiver")
	}

	if _, err := p.Increment("gold"); err != ErrInvalidProgressBucket {
		t.Errorf("Expected error %v, got %v", ErrInvalidProgressBucket, err)
	}
}

func TestBucketFor(t *testing.T) {
	if BucketFor(false) != BucketAudio {
		t.Error("Unassisted success should credit the audio bucket")
	}
	if BucketFor(true) != BucketHint {
		t.Error("Assisted success should credit the hint bucket")
	}
}
