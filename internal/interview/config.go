package interview

import (
	"fmt"
	"time"
)

// TimeLimits are the default seconds allowed per difficulty.
type TimeLimits struct {
	Easy   int
	Medium int
	Hard   int
}

// For returns the limit for d, falling back to Medium for unknown values.
func (t TimeLimits) For(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return t.Easy
	case DifficultyHard:
		return t.Hard
	default:
		return t.Medium
	}
}

// Config holds the policy constants passed to the controller and the pure
// policy functions.
type Config struct {
	// MinQuestions is the number of answers required before early
	// termination may fire.
	MinQuestions int

	// MaxQuestions is the hard ceiling on questions asked.
	MaxQuestions int

	// TerminationThreshold is the minimum acceptable running average.
	TerminationThreshold float64

	TimeLimits TimeLimits

	// OracleTimeout bounds each oracle call. Zero disables the bound.
	OracleTimeout time.Duration
}

// DefaultConfig returns the standard interview settings.
func DefaultConfig() Config {
	return Config{
		MinQuestions:         3,
		MaxQuestions:         10,
		TerminationThreshold: 30,
		TimeLimits: TimeLimits{
			Easy:   90,
			Medium: 120,
			Hard:   180,
		},
		OracleTimeout: 45 * time.Second,
	}
}

// Validate checks that the settings describe a session that can end.
func (c Config) Validate() error {
	if c.MinQuestions < 1 {
		return fmt.Errorf("min_questions must be at least 1, got %d", c.MinQuestions)
	}
	if c.MaxQuestions < c.MinQuestions {
		return fmt.Errorf("max_questions (%d) must be >= min_questions (%d)", c.MaxQuestions, c.MinQuestions)
	}
	if c.TerminationThreshold < 0 || c.TerminationThreshold > 100 {
		return fmt.Errorf("termination_threshold must be within 0-100, got %v", c.TerminationThreshold)
	}
	if c.TimeLimits.Easy <= 0 || c.TimeLimits.Medium <= 0 || c.TimeLimits.Hard <= 0 {
		return fmt.Errorf("time limits must be positive")
	}
	if c.OracleTimeout < 0 {
		return fmt.Errorf("oracle_timeout must not be negative")
	}
	return nil
}
