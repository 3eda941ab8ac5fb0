package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		statusCode int
	}{
		{"bad request", NewBadRequestError(nil, "bad"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError(nil, "no"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError(nil, "denied"), http.StatusForbidden},
		{"not found", NewNotFoundError(nil, "missing"), http.StatusNotFound},
		{"conflict", NewConflictError(nil, "dup"), http.StatusConflict},
		{"internal", NewInternalError(nil, "boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.statusCode, tt.err.StatusCode)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	appErr := NewNotFoundError(cause, "Module not found")

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "Module not found")
}

func TestGetAppError(t *testing.T) {
	appErr := NewBadRequestError(nil, "Invalid request")

	found, ok := GetAppError(appErr)
	assert.True(t, ok)
	assert.Equal(t, appErr, found)

	wrapped := fmt.Errorf("handler: %w", appErr)
	found, ok = GetAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, appErr, found)

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = GetAppError(nil)
	assert.False(t, ok)
}

func TestWithData(t *testing.T) {
	payload := map[string]int{"time_limit": 300}
	appErr := NewBadRequestError(nil, "Time limit exceeded").WithData(payload)

	assert.Equal(t, "Time limit exceeded", appErr.Message)
	assert.Equal(t, payload, appErr.Data)
}
