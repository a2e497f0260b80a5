package session

import (
	"github.com/phrazzld/hececiz/internal/domain"
)

// Event types published by a Controller.
const (
	EventFeedbackChanged   = "session.feedback_changed"
	EventSyllablePresented = "session.syllable_presented"
	EventScoreUpdated      = "session.score_updated"
	EventProfileUpdated    = "session.profile_updated"
	EventHintChanged       = "session.hint_changed"
	EventNotice            = "session.notice"
	EventAudio             = "session.audio"
	EventClosed            = "session.closed"
)

// NoticeNothingDrawn is the notice code for a submit on an empty surface.
const NoticeNothingDrawn = "nothing_drawn"

// NothingDrawnMessage is shown to the learner when they submit a blank surface.
const NothingDrawnMessage = "Lütfen önce çizim yap!"

// FeedbackPayload accompanies EventFeedbackChanged.
type FeedbackPayload struct {
	State    domain.FeedbackState `json:"state"`
	Syllable domain.Syllable      `json:"syllable"`
	Result   *domain.CheckResult  `json:"result,omitempty"`
}

// SyllablePayload accompanies EventSyllablePresented.
type SyllablePayload struct {
	Syllable domain.Syllable `json:"syllable"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
}

// ScorePayload accompanies EventScoreUpdated.
type ScorePayload struct {
	Ledger Ledger                `json:"ledger"`
	Bucket domain.ProgressBucket `json:"bucket"`
}

// ProfilePayload accompanies EventProfileUpdated.
type ProfilePayload struct {
	Profile domain.Profile `json:"profile"`
}

// HintPayload accompanies EventHintChanged.
type HintPayload struct {
	Visible  bool `json:"visible"`
	Assisted bool `json:"assisted"`
}

// NoticePayload accompanies EventNotice.
type NoticePayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AudioPayload accompanies EventAudio.
type AudioPayload struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	URL      string `json:"url,omitempty"`
}

// ClosedPayload accompanies EventClosed.
type ClosedPayload struct {
	Ledger Ledger `json:"ledger"`
}
