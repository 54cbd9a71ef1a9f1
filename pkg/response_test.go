package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestError_MapsKindsToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", NewError(ErrBadRequest, "All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"conflict", NewError(ErrConflict, "User already exists with this email"), http.StatusBadRequest, "User already exists with this email"},
		{"credentials", NewError(ErrInvalidCredentials, "Invalid email or password"), http.StatusBadRequest, "Invalid email or password"},
		{"unauthorized", NewError(ErrUnauthorized, "Invalid token."), http.StatusUnauthorized, "Invalid token."},
		{"rate limited", NewError(ErrRateLimited, "slow down"), http.StatusTooManyRequests, "slow down"},
		{"wrapped api error", fmt.Errorf("signin: %w", NewError(ErrInvalidCredentials, "Invalid email or password")), http.StatusBadRequest, "Invalid email or password"},
		{"bare sentinel", ErrNotFound, http.StatusNotFound, "Not Found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			body := decodeError(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.msg, body.Message)
		})
	}
}

func TestError_UnknownErrorIsGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, fmt.Errorf("failed to get account: %w", errors.New("disk I/O error at /var/lib/db")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, GenericErrorMessage, body.Message)
	assert.NotContains(t, rec.Body.String(), "disk")
}

func TestError_InternalAPIErrorDoesNotLeakMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, NewError(ErrInternal, "pool exhausted on replica-2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, GenericErrorMessage, decodeError(t, rec).Message)
}

func TestJSON_WritesPayloadUnwrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestAPIError_IsAndMessage(t *testing.T) {
	err := NewError(ErrConflict, "User already exists with this email")

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "already exists: User already exists with this email", err.Error())
}
