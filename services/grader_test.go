package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aadidev-sraj/project-lyra/shared"
)

func TestGraderFor(t *testing.T) {
	for _, challengeType := range []string{
		shared.ChallengePhishingDetection,
		shared.ChallengePasswordStrength,
		shared.ChallengeNetworkAnalysis,
		shared.ChallengeMalwareIdentification,
	} {
		g, ok := GraderFor(challengeType)
		assert.True(t, ok, challengeType)
		assert.Equal(t, challengeType, g.Type())
	}

	_, ok := GraderFor("sql-injection")
	assert.False(t, ok)
}

func TestPhishingGrader(t *testing.T) {
	g, _ := GraderFor(shared.ChallengePhishingDetection)
	solution := json.RawMessage(`["email1","email4","email6"]`)

	tests := []struct {
		name    string
		answers string
		score   int
		passed  bool
	}{
		{"all correct", `["email1","email4","email6"]`, 100, true},
		{"two of three", `["email1","email4"]`, 67, false},
		{"false positive costs ten", `["email1","email4","email6","email2"]`, 90, true},
		{"only false positives floors at zero", `["email2","email3","email5"]`, 0, false},
		{"empty submission", `[]`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := g.Grade(json.RawMessage(tt.answers), solution)
			assert.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestPasswordGrader(t *testing.T) {
	g, _ := GraderFor(shared.ChallengePasswordStrength)
	solution := json.RawMessage(`["weak","medium","strong","weak","strong"]`)

	tests := []struct {
		name    string
		answers string
		score   int
		passed  bool
	}{
		{"all correct", `["weak","medium","strong","weak","strong"]`, 100, true},
		{"four of five", `["weak","medium","strong","weak","medium"]`, 80, true},
		{"order matters", `["strong","weak","medium","strong","weak"]`, 0, false},
		{"short submission grades answered positions", `["weak","medium"]`, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := g.Grade(json.RawMessage(tt.answers), solution)
			assert.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestNetworkGrader(t *testing.T) {
	g, _ := GraderFor(shared.ChallengeNetworkAnalysis)
	solution := json.RawMessage(`["log2","log4","log6"]`)

	tests := []struct {
		name    string
		answers string
		score   int
		passed  bool
	}{
		{"all correct", `["log2","log4","log6"]`, 100, true},
		{"false positive costs five", `["log2","log4","log6","log1"]`, 95, true},
		{"two of three misses threshold", `["log2","log4"]`, 67, false},
		{"flagging everything still costs points", `["log1","log2","log3","log4","log5","log6"]`, 85, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := g.Grade(json.RawMessage(tt.answers), solution)
			assert.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.passed, result.Passed)
		})
	}
}

func TestMalwareGrader(t *testing.T) {
	g, _ := GraderFor(shared.ChallengeMalwareIdentification)
	solution := json.RawMessage(`"ransomware"`)

	result, err := g.Grade(json.RawMessage(`"ransomware"`), solution)
	assert.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	result, err = g.Grade(json.RawMessage(`"trojan"`), solution)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)

	// Case matters for exact identification
	result, err = g.Grade(json.RawMessage(`"Ransomware"`), solution)
	assert.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestGradeRejectsMalformedPayload(t *testing.T) {
	g, _ := GraderFor(shared.ChallengePhishingDetection)
	_, err := g.Grade(json.RawMessage(`"not-an-array"`), json.RawMessage(`["a"]`))
	assert.Error(t, err)
}

func TestApplyHintPenalty(t *testing.T) {
	tests := []struct {
		score    int
		hints    int
		expected int
	}{
		{100, 0, 100},
		{100, 2, 90},
		{80, 3, 65},
		{10, 4, 0},
		{0, 1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ApplyHintPenalty(tt.score, tt.hints))
	}
}

func TestHintPenaltyDoesNotDecideSuccess(t *testing.T) {
	// Success comes from the raw graded score; hints only lower the
	// recorded score, possibly below the passing threshold.
	g, _ := GraderFor(shared.ChallengePhishingDetection)
	solution := json.RawMessage(`["a","b","c","d","e"]`)

	result, err := g.Grade(json.RawMessage(`["a","b","c","d","x"]`), solution)
	assert.NoError(t, err)
	assert.Equal(t, 70, result.Score)
	assert.True(t, result.Passed)

	final := ApplyHintPenalty(result.Score, 1)
	assert.Equal(t, 65, final)
	assert.Less(t, final, g.Threshold())
	assert.True(t, result.Passed)
}
