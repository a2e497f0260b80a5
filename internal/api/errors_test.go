package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/capture"
	"github.com/phrazzld/hececiz/internal/domain"
	"github.com/phrazzld/hececiz/internal/session"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "nothing drawn",
			err:            session.ErrNothingDrawn,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "busy",
			err:            session.ErrBusy,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "wrapped busy",
			err:            fmt.Errorf("submit: %w", session.ErrBusy),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "closed",
			err:            session.ErrClosed,
			expectedStatus: http.StatusGone,
		},
		{
			name:           "session not found",
			err:            session.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "profile not found",
			err:            store.ErrProfileNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "store error wrapping not found",
			err:            store.NewStoreError(store.OpGet, uuid.New(), "no row", store.ErrProfileNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid profile",
			err:            fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrProfileNameEmpty),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid tool",
			err:            domain.ErrInvalidTool,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid size",
			err:            capture.ErrInvalidSize,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too many sessions",
			err:            session.ErrTooManySessions,
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unknown cue",
			err:            audio.ErrUnknownCue,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "speech service failure",
			err:            fmt.Errorf("%w: status 503", audio.ErrSynthesis),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "nothing drawn uses the learner notice",
			err:             session.ErrNothingDrawn,
			expectedMessage: session.NothingDrawnMessage,
		},
		{
			name:            "profile not found",
			err:             fmt.Errorf("lookup: %w", store.ErrProfileNotFound),
			expectedMessage: "Profile not found",
		},
		{
			name:            "name too long",
			err:             fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrProfileNameTooLong),
			expectedMessage: "Name must be at most 40 characters",
		},
		{
			name: "database error with connection details",
			err: fmt.Errorf("query failed: %w",
				errors.New("dial tcp postgres://hece:secret@db:5432/hece: connection refused")),
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)
			if tt.err != nil && tt.expectedMessage == "An unexpected error occurred" {
				assert.NotContains(t, message, "secret")
			}
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.Validate.Struct(ToolRequest{Tool: "crayon"})
	require.Error(t, err)
	assert.Equal(t, "Invalid tool: invalid value", SanitizeValidationError(err))

	err = shared.Validate.Struct(ResizeRequest{Width: 0, Height: 10, PixelRatio: 1})
	require.Error(t, err)
	assert.Equal(t, "Invalid width: must be positive", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestHandleAPIErrorHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	req = req.WithContext(shared.WithTraceID(req.Context(), "trace-0123456789"))
	rec := httptest.NewRecorder()

	HandleAPIError(rec, req, errors.New("password=hunter2 leaked"), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), `"trace_id":"trace-0123456789"`)
}
