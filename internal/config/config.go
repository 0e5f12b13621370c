// Package config provides YAML/TOML runner configuration loading, validation
// and the score-driven difficulty table.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// RunnerConfig contains all tunables for the runner simulation and its frontends.
type RunnerConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Obstacle   ObstacleConfig   `yaml:"obstacle" toml:"obstacle"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Bounce     BounceConfig     `yaml:"bounce" toml:"bounce"`
	Reset      ResetConfig      `yaml:"reset" toml:"reset"`
	Assets     AssetsConfig     `yaml:"assets" toml:"assets"`
	Audio      AudioConfig      `yaml:"audio" toml:"audio"`
}

// WorldConfig defines the playfield in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PhysicsConfig defines vertical motion of the player.
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity" toml:"gravity"`       // Added to velocity every frame
	JumpPower float64 `yaml:"jump_power" toml:"jump_power"` // Velocity set on jump (negative = up)
	GroundY   float64 `yaml:"ground_y" toml:"ground_y"`     // Resting y of the player's top edge
	CeilingY  float64 `yaml:"ceiling_y" toml:"ceiling_y"`
}

// PlayerConfig defines the player's fixed column and size.
type PlayerConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// ObstacleConfig defines the tree and its recycling.
type ObstacleConfig struct {
	StartX        float64 `yaml:"start_x" toml:"start_x"`
	Y             float64 `yaml:"y" toml:"y"`
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	BaseSpeed     float64 `yaml:"base_speed" toml:"base_speed"`         // Units per frame, negative = leftward
	SpeedStep     float64 `yaml:"speed_step" toml:"speed_step"`         // Subtracted from speed on each recycle
	MaxSpeed      float64 `yaml:"max_speed" toml:"max_speed"`           // Floor for the (negative) speed
	RespawnJitter float64 `yaml:"respawn_jitter" toml:"respawn_jitter"` // Random extra distance past the right edge
}

// BounceConfig defines the cosmetic idle bounce of the player sprite.
type BounceConfig struct {
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Frequency float64 `yaml:"frequency" toml:"frequency"` // Radians per frame
}

// ResetConfig defines the asset readiness handshake timings.
type ResetConfig struct {
	RetryIntervalMS int `yaml:"retry_interval_ms" toml:"retry_interval_ms"`
	SettleDelayMS   int `yaml:"settle_delay_ms" toml:"settle_delay_ms"`
}

// RetryInterval returns the delay between asset probes.
func (r ResetConfig) RetryInterval() time.Duration {
	return time.Duration(r.RetryIntervalMS) * time.Millisecond
}

// SettleDelay returns the pause between assets becoming ready and play resuming.
func (r ResetConfig) SettleDelay() time.Duration {
	return time.Duration(r.SettleDelayMS) * time.Millisecond
}

// AssetsConfig points at sprite and sound files. Empty Dir uses the embedded set.
type AssetsConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"` // 0.0 - 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty input means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacle.BaseSpeed = -2.5
	case DifficultyHard:
		cfg.Obstacle.BaseSpeed = -4
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	}
}

// Validate checks the config for values the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive, got %v", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.JumpPower >= 0:
		return fmt.Errorf("%w: jump_power must be negative, got %v", ErrInvalidConfig, c.Physics.JumpPower)
	case c.Physics.CeilingY >= c.Physics.GroundY:
		return fmt.Errorf("%w: ceiling_y must be above ground_y", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Obstacle.Width <= 0 || c.Obstacle.Height <= 0:
		return fmt.Errorf("%w: obstacle size must be positive", ErrInvalidConfig)
	case c.Obstacle.BaseSpeed >= 0:
		return fmt.Errorf("%w: obstacle base_speed must be negative, got %v", ErrInvalidConfig, c.Obstacle.BaseSpeed)
	case c.Obstacle.SpeedStep < 0:
		return fmt.Errorf("%w: obstacle speed_step must not be negative", ErrInvalidConfig)
	case c.Obstacle.MaxSpeed > c.Obstacle.BaseSpeed:
		return fmt.Errorf("%w: obstacle max_speed %v is slower than base_speed %v",
			ErrInvalidConfig, c.Obstacle.MaxSpeed, c.Obstacle.BaseSpeed)
	case c.Obstacle.RespawnJitter < 0:
		return fmt.Errorf("%w: obstacle respawn_jitter must not be negative", ErrInvalidConfig)
	case c.Reset.RetryIntervalMS <= 0:
		return fmt.Errorf("%w: reset retry_interval_ms must be positive", ErrInvalidConfig)
	case c.Reset.SettleDelayMS < 0:
		return fmt.Errorf("%w: reset settle_delay_ms must not be negative", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume must be within [0, 1]", ErrInvalidConfig)
	}
	return c.Difficulty.Validate()
}
