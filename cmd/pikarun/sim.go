package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/logging"
	"github.com/vovakirdan/pika-runner/internal/platform/headless"
	"github.com/vovakirdan/pika-runner/internal/session"
)

var (
	flagFrames    int
	flagEpisodes  int
	flagAutopilot bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the runner without a display on a simulated clock and print a
summary. Runs are deterministic for a given --seed and config.

Examples:
  pikarun sim --seed 42
  pikarun sim --autopilot --episodes 5 --frames 100000
  pikarun sim --autopilot --difficulty hard --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 36000, "Maximum frames to simulate")
	simCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Game overs to play through")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Jump automatically when a tree is close")
}

func runSim(cmd *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.Open(flagLogFile, flagLogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close() //nolint:errcheck
	logger.Debug("config loaded", "source", source)

	rt := runtimeConfig(0, 0)
	sess := session.New(cfg, session.Options{
		Seed:   rt.Seed,
		Prober: assets.NewLibrary(assets.DirFS(cfg.Assets.Dir)),
		Logger: logger,
	})
	defer sess.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := headless.Run(ctx, sess, headless.Options{
		Interval:  rt.FrameInterval(),
		MaxFrames: flagFrames,
		Episodes:  flagEpisodes,
		Autopilot: flagAutopilot,
		Start:     time.Unix(0, 0),
	}, logger)
	if err != nil {
		logger.Warn("simulation interrupted", "error", err)
	}

	fmt.Printf("seed:       %d\n", rt.Seed)
	fmt.Printf("frames:     %d\n", rep.Frames)
	fmt.Printf("episodes:   %d\n", rep.Episodes)
	fmt.Printf("scores:     %v\n", rep.Scores)
	fmt.Printf("best:       %d\n", max(rep.BestScore, rep.LastScore))
	fmt.Printf("jumps:      %d\n", rep.Jumps)
	fmt.Printf("finished:   %v\n", rep.Finished)
}
