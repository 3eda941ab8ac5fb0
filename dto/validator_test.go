package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret123"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "ada@example.com", Password: "secret123"}},
		{"name too short", RegisterRequest{Name: "A", Email: "ada@example.com", Password: "secret123"}},
		{"bad email", RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "secret123"}},
		{"short password", RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestChangePasswordRequestValidate(t *testing.T) {
	valid := ChangePasswordRequest{CurrentPassword: "old123", NewPassword: "new1234", ConfirmPassword: "new1234"}
	assert.NoError(t, valid.Validate())

	mismatch := ChangePasswordRequest{CurrentPassword: "old123", NewPassword: "new1234", ConfirmPassword: "different"}
	assert.Error(t, mismatch.Validate())
}

func TestFormatValidationErrors(t *testing.T) {
	req := RegisterRequest{Email: "bad"}
	err := req.Validate()
	assert.Error(t, err)

	errors := FormatValidationErrors(err)
	assert.NotEmpty(t, errors)
	for _, e := range errors {
		assert.NotEmpty(t, e.Field)
		assert.NotEmpty(t, e.Message)
	}
}
