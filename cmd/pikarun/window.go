//go:build ebiten

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/audio"
	"github.com/vovakirdan/pika-runner/internal/logging"
	"github.com/vovakirdan/pika-runner/internal/platform/window"
	"github.com/vovakirdan/pika-runner/internal/session"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start the runner in a desktop window using the PNG sprites.

Controls:
  Space/Up/W - Jump (restart after game over)
  R          - Reset
  P          - Pause
  T          - Toggle dark/light theme
  M          - Mute sounds
  Q          - Quit`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 1, "Window scale factor")
}

func runWindow(cmd *cobra.Command, args []string) {
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
	logger.Info("config loaded", "source", source)

	rt := runtimeConfig(int(cfg.World.Width), int(cfg.World.Height))
	fsys := assets.DirFS(cfg.Assets.Dir)
	images := window.NewImageSet(fsys)

	sess := session.New(cfg, session.Options{
		Seed:   rt.Seed,
		Prober: images,
		Audio:  audio.Open(cfg.Audio, fsys, logger),
		Logger: logger,
	})

	runErr := window.Run(window.Options{
		Session: sess,
		Images:  images,
		Config:  cfg,
		Runtime: rt,
		Logger:  logger,
		Scale:   flagScale,
	})
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
