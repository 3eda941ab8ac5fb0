package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContent(t *testing.T) {
	c := &Challenge{Content: json.RawMessage(`{"scenario":"triage the inbox","hints":["check domains"],"solution":["email1"]}`)}

	content, err := c.DecodeContent()
	assert.NoError(t, err)
	assert.Equal(t, "triage the inbox", content.Scenario)
	assert.Equal(t, []string{"check domains"}, content.Hints)
	assert.JSONEq(t, `["email1"]`, string(content.Solution))

	empty := &Challenge{}
	content, err = empty.DecodeContent()
	assert.NoError(t, err)
	assert.Empty(t, content.Scenario)
}

func TestSuccessRate(t *testing.T) {
	c := &Challenge{Stats: ChallengeStats{Attempts: 10, Successes: 4}}
	assert.Equal(t, 40, c.SuccessRate())

	fresh := &Challenge{}
	assert.Equal(t, 0, fresh.SuccessRate())
}
