package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/capture"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/events"
	"github.com/phrazzld/hececiz/internal/session"
)

// CreateProfileRequest is the body of POST /api/profiles. Name length in
// runes is enforced by the domain.
type CreateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProfileResponse is a learner profile.
type ProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Avatar            string    `json:"avatar"`
	TotalCorrectAudio int       `json:"total_correct_audio"`
	TotalCorrectHint  int       `json:"total_correct_hint"`
	CreatedAt         time.Time `json:"created_at"`
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		Name:              p.Name,
		Avatar:            p.Avatar,
		TotalCorrectAudio: p.TotalCorrectAudio,
		TotalCorrectHint:  p.TotalCorrectHint,
		CreatedAt:         p.CreatedAt,
	}
}

// StartSessionRequest is the body of POST /api/sessions. Every field is
// optional; a missing profile starts a guest session.
type StartSessionRequest struct {
	ProfileID  *uuid.UUID `json:"profile_id"`
	Width      float64    `json:"width"       validate:"gte=0,lte=4096"`
	Height     float64    `json:"height"      validate:"gte=0,lte=4096"`
	PixelRatio float64    `json:"pixel_ratio" validate:"gte=0,lte=8"`
}

// Validate checks the field limits and, when every dimension is given, that
// the resulting raster fits within capture.MaxPixels.
func (r *StartSessionRequest) Validate() error {
	if err := shared.Validate.Struct(r); err != nil {
		return err
	}
	if r.Width > 0 && r.Height > 0 && r.PixelRatio > 0 {
		return capture.CheckSize(r.Width, r.Height, r.PixelRatio)
	}
	return nil
}

// StrokeRequest is the body of POST /api/sessions/{id}/strokes.
type StrokeRequest struct {
	Tool   string          `json:"tool"   validate:"omitempty,oneof=ink erase"`
	Bounds capture.Bounds  `json:"bounds"`
	Points []capture.Point `json:"points" validate:"required,min=1,max=4096"`
	Leave  bool            `json:"leave"`
}

// ResizeRequest is the body of POST /api/sessions/{id}/resize.
type ResizeRequest struct {
	Width      float64 `json:"width"       validate:"gt=0,lte=4096"`
	Height     float64 `json:"height"      validate:"gt=0,lte=4096"`
	PixelRatio float64 `json:"pixel_ratio" validate:"gt=0,lte=8"`
}

// Validate checks the field limits and the raster size.
func (r *ResizeRequest) Validate() error {
	if err := shared.Validate.Struct(r); err != nil {
		return err
	}
	return capture.CheckSize(r.Width, r.Height, r.PixelRatio)
}

// ResizeResponse reports whether the surface was re-provisioned and cleared.
type ResizeResponse struct {
	Resized bool          `json:"resized"`
	State   session.State `json:"state"`
}

// HintRequest is the body of POST /api/sessions/{id}/hint.
type HintRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// ToolRequest is the body of POST /api/sessions/{id}/tool.
type ToolRequest struct {
	Tool string `json:"tool" validate:"required,oneof=ink erase"`
}

// EventsResponse is the body of GET /api/sessions/{id}/events. Next is the
// value to pass as after on the following poll.
type EventsResponse struct {
	Events []events.Entry `json:"events"`
	Next   int            `json:"next"`
}
