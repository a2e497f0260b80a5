package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileTestRouter(t *testing.T) http.Handler {
	t.Helper()
	_, log := logger.NewTestLogger(t)
	return newProfileRouter(NewProfileHandler(memory.NewProfileStore(log), log))
}

func TestNewProfileHandlerRequiresStore(t *testing.T) {
	assert.Panics(t, func() { NewProfileHandler(nil, nil) })
}

func TestProfileLifecycle(t *testing.T) {
	router := newProfileTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/profiles", CreateProfileRequest{Name: "Elif"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[ProfileResponse](t, rec)
	assert.Equal(t, "Elif", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEmpty(t, created.Avatar)
	assert.Zero(t, created.TotalCorrectAudio)
	assert.Zero(t, created.TotalCorrectHint)

	rec = doJSON(t, router, http.MethodGet, "/api/profiles/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decodeBody[ProfileResponse](t, rec).ID)

	rec = doJSON(t, router, http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]ProfileResponse](t, rec), 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/profiles/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/profiles/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile not found")
}

func TestCreateProfileValidation(t *testing.T) {
	router := newProfileTestRouter(t)

	tests := []struct {
		name     string
		body     interface{}
		status   int
		contains string
	}{
		{
			name:     "missing name",
			body:     map[string]string{},
			status:   http.StatusBadRequest,
			contains: "Invalid name: required field",
		},
		{
			name:     "blank name",
			body:     CreateProfileRequest{Name: "   "},
			status:   http.StatusBadRequest,
			contains: "Name is required",
		},
		{
			name:     "name too long",
			body:     CreateProfileRequest{Name: strings.Repeat("ş", 41)},
			status:   http.StatusBadRequest,
			contains: "Name must be at most 40 characters",
		},
		{
			name:     "unknown field",
			body:     map[string]string{"name": "Ali", "role": "admin"},
			status:   http.StatusBadRequest,
			contains: "Invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/profiles", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestProfileInvalidID(t *testing.T) {
	router := newProfileTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/profiles/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid ID")

	rec = doJSON(t, router, http.MethodDelete, "/api/profiles/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
