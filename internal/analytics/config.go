package analytics

import "time"

// Config is the tunable surface of the engine.
type Config struct {
	TargetDuration time.Duration `yaml:"target_duration"`
	Ranges         Ranges        `yaml:"ranges"`
}

// DefaultConfig returns the built-in thresholds.
func DefaultConfig() Config {
	return Config{
		TargetDuration: DefaultTargetDuration,
		Ranges:         DefaultRanges(),
	}
}
