package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"alice@example.com", "al***@example.com"},
		{"bob.smith@corp.io", "bo***@corp.io"},
		{"a@example.com", "a***@example.com"},
		{"not-an-email", "***"},
		{"@example.com", "***"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, maskEmail(tt.email), tt.email)
	}
}
