package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		expected  int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 4, 25},
		{2, 3, 67},
		{1, 3, 33},
		{3, 3, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CalculateProgress(tt.completed, tt.total))
	}
}

func TestHasCompletedSection(t *testing.T) {
	raw, _ := json.Marshal([]SectionCompletion{
		{SectionID: "sec1"},
		{SectionID: "sec2"},
	})
	p := &Progress{SectionsCompleted: raw}

	assert.True(t, p.HasCompletedSection("sec1"))
	assert.True(t, p.HasCompletedSection("sec2"))
	assert.False(t, p.HasCompletedSection("sec3"))

	empty := &Progress{}
	assert.False(t, empty.HasCompletedSection("sec1"))
}

func TestIsQuizPassed(t *testing.T) {
	p := &Progress{BestQuizScore: 70}

	assert.True(t, p.IsQuizPassed(70))
	assert.True(t, p.IsQuizPassed(60))
	assert.False(t, p.IsQuizPassed(80))
}

func TestDecodeHelpersTolerateEmptyColumns(t *testing.T) {
	p := &Progress{}

	assert.Empty(t, p.DecodeSectionsCompleted())
	assert.Empty(t, p.DecodeQuizAttempts())
	assert.Empty(t, p.DecodeBookmarks())
	assert.Empty(t, p.DecodeActivityLog())
}
