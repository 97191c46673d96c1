package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analytics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAnalytics_Defaults(t *testing.T) {
	cfg, err := LoadAnalytics("")
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultConfig(), cfg)
}

func TestLoadAnalytics_Overrides(t *testing.T) {
	path := writeFile(t, `
target_duration: 7h30m
ranges:
  sample_interval: 15m
  heart_rate_min: 45
`)

	cfg, err := LoadAnalytics(path)
	require.NoError(t, err)

	assert.Equal(t, 7*time.Hour+30*time.Minute, cfg.TargetDuration)
	assert.Equal(t, 15*time.Minute, cfg.Ranges.SampleInterval)
	assert.Equal(t, 45.0, cfg.Ranges.HeartRateMin)
	// untouched keys keep their defaults
	assert.Equal(t, analytics.DefaultRanges().HeartRateMax, cfg.Ranges.HeartRateMax)
	assert.Equal(t, analytics.DefaultRanges().MinStageDuration, cfg.Ranges.MinStageDuration)
}

func TestLoadAnalytics_Errors(t *testing.T) {
	_, err := LoadAnalytics(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadAnalytics(writeFile(t, "target_duration: [not, a, duration]"))
	assert.Error(t, err)

	_, err = LoadAnalytics(writeFile(t, "target_duration: 0s"))
	assert.ErrorContains(t, err, "target_duration must be positive")
}
