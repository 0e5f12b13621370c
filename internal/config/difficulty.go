package config

import (
	"fmt"
	"math"
	"sort"
)

// SpeedStep is one row of the difficulty table: from Score onwards the
// obstacle speed is scaled by Multiplier.
type SpeedStep struct {
	Score      int     `yaml:"score" toml:"score"`
	Multiplier float64 `yaml:"multiplier" toml:"multiplier"`
}

// DifficultyConfig defines the score-driven speed multiplier table.
type DifficultyConfig struct {
	Enabled       bool        `yaml:"enabled" toml:"enabled"`
	MaxMultiplier float64     `yaml:"max_multiplier" toml:"max_multiplier"`
	Steps         []SpeedStep `yaml:"steps" toml:"steps"`
}

// Validate requires a table that starts at score 0, is strictly ascending in
// score and never lowers the multiplier.
func (d DifficultyConfig) Validate() error {
	if len(d.Steps) == 0 {
		return fmt.Errorf("%w: difficulty table is empty", ErrInvalidConfig)
	}
	if d.Steps[0].Score != 0 {
		return fmt.Errorf("%w: difficulty table must start at score 0, starts at %d", ErrInvalidConfig, d.Steps[0].Score)
	}
	if d.MaxMultiplier <= 0 {
		return fmt.Errorf("%w: max_multiplier must be positive", ErrInvalidConfig)
	}
	for i, s := range d.Steps {
		if s.Multiplier <= 0 {
			return fmt.Errorf("%w: difficulty step %d has non-positive multiplier %v", ErrInvalidConfig, i, s.Multiplier)
		}
		if i == 0 {
			continue
		}
		prev := d.Steps[i-1]
		if s.Score <= prev.Score {
			return fmt.Errorf("%w: difficulty step %d score %d is not above %d", ErrInvalidConfig, i, s.Score, prev.Score)
		}
		if s.Multiplier < prev.Multiplier {
			return fmt.Errorf("%w: difficulty step %d lowers multiplier %v -> %v", ErrInvalidConfig, i, prev.Multiplier, s.Multiplier)
		}
	}
	return nil
}

// SpeedTable maps cumulative score to the obstacle speed multiplier.
// It holds no state beyond the table, so Multiplier can run every frame.
type SpeedTable struct {
	steps   []SpeedStep
	max     float64
	enabled bool
}

// NewSpeedTable creates a table from a validated difficulty config.
func NewSpeedTable(cfg DifficultyConfig) *SpeedTable {
	steps := make([]SpeedStep, len(cfg.Steps))
	copy(steps, cfg.Steps)
	return &SpeedTable{
		steps:   steps,
		max:     cfg.MaxMultiplier,
		enabled: cfg.Enabled,
	}
}

// IsEnabled returns whether the multiplier progresses with score.
func (t *SpeedTable) IsEnabled() bool {
	return t.enabled
}

// Base returns the multiplier for a fresh episode.
func (t *SpeedTable) Base() float64 {
	if len(t.steps) == 0 {
		return 1.0
	}
	return t.clamp(t.steps[0].Multiplier)
}

// Multiplier returns the speed multiplier for the given score. The last row
// applies to every score past it; the table is not extrapolated.
func (t *SpeedTable) Multiplier(score int) float64 {
	if !t.enabled || len(t.steps) == 0 || score <= 0 {
		return t.Base()
	}

	// First row whose threshold is above score; the one before it applies.
	i := sort.Search(len(t.steps), func(i int) bool {
		return t.steps[i].Score > score
	})
	if i == 0 {
		return t.Base()
	}
	return t.clamp(t.steps[i-1].Multiplier)
}

// clamp caps a multiplier at the configured maximum.
func (t *SpeedTable) clamp(m float64) float64 {
	if t.max <= 0 {
		return m
	}
	return math.Min(m, t.max)
}
