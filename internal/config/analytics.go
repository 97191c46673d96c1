package config

import (
	"fmt"
	"os"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"gopkg.in/yaml.v3"
)

// LoadAnalytics returns the engine defaults overridden by the YAML file at
// path. Keys missing from the file keep their defaults; an empty path means
// defaults only.
//
//	target_duration: 7h30m
//	ranges:
//	  sample_interval: 15m
//	  heart_rate_min: 45
func LoadAnalytics(path string) (analytics.Config, error) {
	cfg := analytics.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read analytics config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse analytics config %s: %w", path, err)
	}

	if cfg.TargetDuration <= 0 {
		return cfg, fmt.Errorf("analytics config %s: target_duration must be positive", path)
	}
	return cfg, nil
}
