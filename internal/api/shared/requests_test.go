package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedRequest struct {
	Name string `json:"name" validate:"required"`
}

type selfValidating struct {
	Count int `json:"count"`
}

func (s selfValidating) Validate() error {
	if s.Count%2 != 0 {
		return errors.New("count must be even")
	}
	return nil
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
		fails   bool
	}{
		{name: "valid", body: `{"name":"Ada"}`},
		{name: "empty", body: ``, wantErr: ErrEmptyBody},
		{name: "unknown field", body: `{"name":"Ada","admin":true}`, fails: true},
		{name: "trailing data", body: `{"name":"Ada"}{"name":"Bob"}`, fails: true},
		{name: "malformed", body: `{"name":`, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v namedRequest
			err := DecodeJSON(newRequest(tt.body), &v)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.fails:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Ada", v.Name)
			}
		})
	}
}

func TestDecodeJSONBodyLimit(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxRequestBodyBytes) + `"}`
	var v namedRequest
	assert.Error(t, DecodeJSON(newRequest(body), &v))
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(&namedRequest{})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "Name", validationErrs[0].Field())

	assert.NoError(t, ValidateRequest(&namedRequest{Name: "Ada"}))

	assert.EqualError(t, ValidateRequest(selfValidating{Count: 3}), "count must be even")
	assert.NoError(t, ValidateRequest(selfValidating{Count: 4}))
}
