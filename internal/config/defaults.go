package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It matches
// defaults/runner.yaml and is the fallback when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:  800,
			Height: 200,
		},
		Physics: PhysicsConfig{
			Gravity:   0.6,
			JumpPower: -12,
			GroundY:   150,
			CeilingY:  0,
		},
		Player: PlayerConfig{
			X:      50,
			Width:  32,
			Height: 32,
		},
		Obstacle: ObstacleConfig{
			StartX:        800,
			Y:             150,
			Width:         32,
			Height:        48,
			BaseSpeed:     -3,
			SpeedStep:     0.1,
			MaxSpeed:      -6,
			RespawnJitter: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			MaxMultiplier: 5.0,
			Steps: []SpeedStep{
				{Score: 0, Multiplier: 1.0},
				{Score: 5, Multiplier: 1.5},
				{Score: 10, Multiplier: 2.0},
				{Score: 15, Multiplier: 2.5},
				{Score: 20, Multiplier: 3.0},
				{Score: 25, Multiplier: 3.5},
				{Score: 30, Multiplier: 4.0},
			},
		},
		Bounce: BounceConfig{
			Amplitude: 2,
			Frequency: 0.1,
		},
		Reset: ResetConfig{
			RetryIntervalMS: 500,
			SettleDelayMS:   200,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
