// pikarun is an endless side-scrolling runner: jump the trees, keep the score
// climbing as the world speeds up.
//
// Usage:
//
//	pikarun play             - Play in the terminal
//	pikarun sim              - Run a headless simulation
//	pikarun window           - Play in a desktop window (built with -tags ebiten)
//	pikarun config show      - Print the effective configuration
//	pikarun config init      - Write a starter config file
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a YAML or TOML config file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pikarun",
	Short: "Pika Runner - jump the trees, chase the score",
	Long: `Pika Runner is an endless side-scrolling runner. A tree scrolls in
from the right; jump over it to score. Every few points the world speeds up.

Available commands:
  play     - Play in the terminal
  sim      - Run a headless simulation
  window   - Play in a desktop window
  config   - Show or create configuration

Examples:
  pikarun play
  pikarun play --difficulty hard
  pikarun sim --autopilot --episodes 3 --seed 42
  pikarun config show --format toml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the runner config from the global flags.
func loadConfig() (config.RunnerConfig, string, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("config: after %s preset: %w", preset, err)
	}
	return cfg, source, nil
}

// runtimeConfig builds the frontend settings, picking a seed if none was set.
func runtimeConfig(width, height int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
