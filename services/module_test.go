package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Phishing Fundamentals", "phishing-fundamentals"},
		{"  Network Traffic Analysis  ", "network-traffic-analysis"},
		{"SQL Injection: Attack & Defense!", "sql-injection-attack-defense"},
		{"C2 Beaconing 101", "c2-beaconing-101"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, slugify(tt.title), tt.title)
	}
}

func TestDecodeStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, decodeStringList(json.RawMessage(`["a","b"]`)))
	assert.Nil(t, decodeStringList(nil))
	assert.Nil(t, decodeStringList(json.RawMessage(`not json`)))
}
