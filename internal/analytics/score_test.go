package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     int
	}{
		{"on target", 8 * time.Hour, 100},
		{"two hours short", 6 * time.Hour, 80},
		{"two hours over", 10 * time.Hour, 80},
		{"penalty truncates", 7*time.Hour + 55*time.Minute, 100},
		{"six minutes short", 7*time.Hour + 54*time.Minute, 99},
		{"nothing", 0, 20},
		{"clamped at zero", 24 * time.Hour, 0},
		{"negative duration", -2 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.duration, DefaultTargetDuration))
		})
	}
}

func TestScore_CustomTarget(t *testing.T) {
	assert.Equal(t, 100, Score(7*time.Hour, 7*time.Hour))
	assert.Equal(t, 90, Score(8*time.Hour, 7*time.Hour))
	assert.Equal(t, 100, Score(8*time.Hour, 0), "non-positive target falls back to default")
}

func TestScore_Monotonic(t *testing.T) {
	prev := -1
	for d := time.Duration(0); d <= 8*time.Hour; d += 7 * time.Minute {
		s := Score(d, DefaultTargetDuration)
		assert.GreaterOrEqual(t, s, prev, "score dropped at %s", d)
		prev = s
	}

	prev = MaxScore + 1
	for d := 8 * time.Hour; d <= 30*time.Hour; d += 7 * time.Minute {
		s := Score(d, DefaultTargetDuration)
		assert.LessOrEqual(t, s, prev, "score rose at %s", d)
		assert.GreaterOrEqual(t, s, MinScore)
		assert.LessOrEqual(t, s, MaxScore)
		prev = s
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		label string
		emoji string
	}{
		{100, "excellent", "😃"},
		{85, "excellent", "😃"},
		{84, "good", "🙂"},
		{75, "good", "🙂"},
		{74, "fair", "😐"},
		{60, "fair", "😐"},
		{59, "poor", "😟"},
		{0, "poor", "😟"},
		{150, "excellent", "😃"},
		{-5, "poor", "😟"},
	}

	for _, tt := range tests {
		b := BandFor(tt.score)
		assert.Equal(t, tt.label, b.Label, "score %d", tt.score)
		assert.Equal(t, tt.emoji, b.Emoji, "score %d", tt.score)
	}
}
