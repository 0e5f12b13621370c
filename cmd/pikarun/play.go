package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/audio"
	"github.com/vovakirdan/pika-runner/internal/logging"
	"github.com/vovakirdan/pika-runner/internal/platform/tui"
	"github.com/vovakirdan/pika-runner/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the runner in the terminal.

Controls:
  Space/Up/W - Jump (restart after game over)
  R          - Reset
  P/Esc      - Pause
  T          - Toggle dark/light theme
  M          - Mute sounds
  Ctrl+S     - Save a text screenshot
  ?          - Show all keys
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower trees, normal progression
  normal - Default speeds
  hard   - Faster trees from the start
  fixed  - No speed-up as the score climbs

Logs go nowhere unless --log-file is set, since the game owns the terminal.

Examples:
  pikarun play
  pikarun play --difficulty easy
  pikarun play --config ./runner.toml --log-file ./pikarun.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := logging.Open(flagLogFile, flagLogLevel, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close() //nolint:errcheck
	logger.Info("config loaded", "source", source)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := runtimeConfig(width, height)

	library := assets.NewLibrary(assets.DirFS(cfg.Assets.Dir))
	sess := session.New(cfg, session.Options{
		Seed:   rt.Seed,
		Prober: library,
		Audio:  audio.Open(cfg.Audio, library.FS(), logger),
		Logger: logger,
	})

	runErr := tui.Run(tui.Options{
		Session: sess,
		Library: library,
		Config:  cfg,
		Runtime: rt,
		Logger:  logger,
	})

	// Release audio before potential exit
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
