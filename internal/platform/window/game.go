//go:build ebiten

// Package window provides a desktop frontend for the runner built on ebiten.
package window

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/core"
	"github.com/vovakirdan/pika-runner/internal/session"
)

// Options wires the window to a session.
type Options struct {
	Session *session.Session
	Images  *ImageSet // nil draws placeholders
	Config  config.RunnerConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger
	Scale   int
}

// Game implements ebiten.Game.
type Game struct {
	session *session.Session
	images  *ImageSet
	cfg     config.RunnerConfig
	logger  *log.Logger
	palette palette
	paused  bool
}

var (
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	resetKeys = []ebiten.Key{ebiten.KeyR}
)

// NewGame creates the window game.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		session: opts.Session,
		images:  opts.Images,
		cfg:     opts.Config,
		logger:  logger,
		palette: darkPalette,
	}
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Update handles input and advances one frame.
func (g *Game) Update() error {
	now := time.Now()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case anyJustPressed(resetKeys):
		g.paused = false
		g.session.RequestReset(now)
	case anyJustPressed(jumpKeys) && !g.paused:
		g.session.Primary(now)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.palette = g.palette.toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		muted := g.session.ToggleMute()
		g.logger.Debug("sound toggled", "muted", muted)
	}

	if !g.paused {
		g.session.Tick(now)
	}
	return nil
}

// Draw renders the world at its native resolution.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.background)

	snap := g.session.Snapshot()
	status := g.session.Status()
	w := float32(g.cfg.World.Width)

	groundY := float32(g.cfg.Obstacle.Y + g.cfg.Obstacle.Height)
	vector.DrawFilledRect(screen, 0, groundY, w, 2, g.palette.ground, false)

	player := snap.Player.Translate(0, snap.Bounce)
	if g.images != nil && g.images.Loaded() {
		drawImage(screen, g.images.obstacle, snap.Obstacle)
		drawImage(screen, g.images.player, player)
	} else {
		fillRect(screen, snap.Obstacle, g.palette.tree)
		fillRect(screen, player, g.palette.placeholder)
	}

	vector.DrawFilledRect(screen, 0, 0, w, 36, g.palette.hud, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 2)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Speed: %.1fx", snap.Multiplier), 10, 18)

	cx := int(w)/2 - 40
	switch {
	case status.Pending():
		msg := "Loading..."
		if status.Phase == session.PhaseSettling {
			msg = "Get ready..."
		}
		ebitenutil.DebugPrintAt(screen, msg, cx, 80)
	case snap.Terminal:
		ebitenutil.DebugPrintAt(screen, "Game Over!", cx, 70)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Final score: %d", snap.Score), cx, 86)
	case g.paused:
		ebitenutil.DebugPrintAt(screen, "Paused", cx, 80)
	}
}

// Layout keeps the logical screen at world size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.cfg.World.Width), int(g.cfg.World.Height)
}

func drawImage(screen, img *ebiten.Image, r core.Rect) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	screen.DrawImage(img, op)
}

func fillRect(screen *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	scale := max(opts.Scale, 1)
	w, h := int(opts.Config.World.Width), int(opts.Config.World.Height)

	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("Pika Runner")
	ebiten.SetTPS(max(opts.Runtime.TickRate, 1))

	opts.Session.Start(time.Now())
	if err := ebiten.RunGame(NewGame(opts)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
