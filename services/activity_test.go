package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, -offset)
	}

	tests := []struct {
		name     string
		days     []time.Time
		expected int
	}{
		{"no activity", nil, 0},
		{"today only", []time.Time{day(0)}, 1},
		{"three consecutive days", []time.Time{day(0), day(1), day(2)}, 3},
		{"gap breaks the run", []time.Time{day(0), day(3)}, 1},
		{"yesterday anchors a grace streak", []time.Time{day(1), day(2)}, 2},
		{"older than yesterday is dead", []time.Time{day(2), day(3)}, 0},
		{"duplicate timestamps same day", []time.Time{day(0), day(0).Add(-2 * time.Hour), day(1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, computeStreak(tt.days, now))
		})
	}
}

func TestTimeframeStart(t *testing.T) {
	now := time.Now()

	assert.WithinDuration(t, now.Add(-24*time.Hour), timeframeStart("24h"), time.Minute)
	assert.WithinDuration(t, now.AddDate(0, 0, -30), timeframeStart("30d"), time.Minute)
	assert.WithinDuration(t, now.AddDate(0, 0, -90), timeframeStart("90d"), time.Minute)
	// Anything unrecognized falls back to the last week
	assert.WithinDuration(t, now.AddDate(0, 0, -7), timeframeStart(""), time.Minute)
}
