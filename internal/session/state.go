package session

import (
	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/domain"
)

// State is a read-only snapshot of a Controller.
type State struct {
	SessionID    uuid.UUID            `json:"session_id"`
	Feedback     domain.FeedbackState `json:"feedback"`
	Syllable     domain.Syllable      `json:"syllable"`
	Index        int                  `json:"index"`
	Total        int                  `json:"total"`
	HintVisible  bool                 `json:"hint_visible"`
	Assisted     bool                 `json:"assisted"`
	Tool         domain.Tool          `json:"tool"`
	Ledger       Ledger               `json:"ledger"`
	Profile      *domain.Profile      `json:"profile,omitempty"`
	SurfaceEmpty bool                 `json:"surface_empty"`
	LastResult   *domain.CheckResult  `json:"last_result,omitempty"`
	Width        float64              `json:"width"`
	Height       float64              `json:"height"`
	PixelRatio   float64              `json:"pixel_ratio"`
	Closed       bool                 `json:"closed"`
}

// Guest reports whether the session has no profile to credit.
func (s State) Guest() bool {
	return s.Profile == nil
}
