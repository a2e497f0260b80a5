package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/capture"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/session"
	"github.com/phrazzld/hececiz/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, session.ErrNothingDrawn):
		return http.StatusUnprocessableEntity

	case errors.Is(err, session.ErrBusy),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, session.ErrClosed):
		return http.StatusGone

	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable

	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, audio.ErrUnknownCue),
		errors.Is(err, audio.ErrClipNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTool),
		errors.Is(err, domain.ErrProfileNameEmpty),
		errors.Is(err, domain.ErrProfileNameTooLong),
		errors.Is(err, capture.ErrInvalidSize),
		errors.Is(err, session.ErrInvalidStroke),
		errors.Is(err, audio.ErrEmptyText),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	case errors.Is(err, audio.ErrSynthesis):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, session.ErrNothingDrawn):
		return session.NothingDrawnMessage
	case errors.Is(err, session.ErrBusy):
		return "Session is busy, wait for the current turn to finish"
	case errors.Is(err, session.ErrClosed):
		return "Session has ended"
	case errors.Is(err, session.ErrTooManySessions):
		return "Too many active sessions, try again later"
	case errors.Is(err, session.ErrNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, audio.ErrUnknownCue):
		return "Cue not found"
	case errors.Is(err, audio.ErrClipNotFound):
		return "Audio not found"
	case errors.Is(err, audio.ErrSynthesis):
		return "Speech service unavailable"
	case errors.Is(err, domain.ErrProfileNameEmpty):
		return "Name is required"
	case errors.Is(err, domain.ErrProfileNameTooLong):
		return fmt.Sprintf("Name must be at most %d characters", domain.MaxProfileNameLength)
	case errors.Is(err, domain.ErrInvalidTool):
		return "Invalid tool"
	case errors.Is(err, capture.ErrInvalidSize):
		return "Invalid surface size"
	case errors.Is(err, session.ErrInvalidStroke):
		return "Stroke must contain at least one point"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too large"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid item"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// full error. A non-empty message overrides the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
