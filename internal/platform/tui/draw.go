package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/core"
	"github.com/vovakirdan/pika-runner/internal/session"
	"github.com/vovakirdan/pika-runner/internal/sim"
)

// Frame is everything needed to draw one terminal frame.
type Frame struct {
	World      config.WorldConfig
	Snapshot   sim.Snapshot
	Status     session.Status
	Sprites    assets.SpriteSet
	HasSprites bool
	Paused     bool
}

// viewport maps world units onto the playfield rows of a screen.
// Row 0 is the HUD and the last row is the ground line.
type viewport struct {
	sx, sy float64
	top    int
	rows   int
}

func newViewport(s *core.Screen, world config.WorldConfig) viewport {
	rows := max(s.Height()-2, 1)
	return viewport{
		sx:   float64(s.Width()) / world.Width,
		sy:   float64(rows) / world.Height,
		top:  1,
		rows: rows,
	}
}

// cells converts a world rectangle to screen cells. Every visible entity
// covers at least one cell.
func (v viewport) cells(r core.Rect) core.CellRect {
	x := int(math.Round(r.X * v.sx))
	y := v.top + int(math.Round(r.Y*v.sy))
	w := max(int(math.Round(r.W*v.sx)), 1)
	h := max(int(math.Round(r.H*v.sy)), 1)

	// Keep entities standing on the ground line
	if bottom := v.top + v.rows; y+h > bottom {
		y = bottom - h
	}
	return core.NewCellRect(x, y, w, h)
}

// DrawFrame renders f into s.
func DrawFrame(s *core.Screen, f Frame) {
	s.Clear()
	v := newViewport(s, f.World)
	snap := f.Snapshot

	drawHUD(s, f)
	s.DrawHLine(0, v.top+v.rows, s.Width(), '▔', core.ColorGround)

	obstacle := v.cells(snap.Obstacle)
	player := v.cells(snap.Player.Translate(0, snap.Bounce))

	if f.HasSprites {
		drawSprite(s, f.Sprites.Obstacle, obstacle, core.ColorObstacle)
		drawSprite(s, f.Sprites.Player, player, core.ColorPlayer)
	} else {
		s.DrawRect(obstacle, '█', core.ColorObstacle)
		s.DrawRect(player, '█', core.ColorPlaceholder)
	}

	mid := v.top + v.rows/2
	switch {
	case f.Status.Pending():
		drawPending(s, f.Status, mid)
	case snap.Terminal:
		drawGameOverBox(s, mid)
		s.DrawTextCentered(mid-1, "Game Over!", core.ColorAlert)
		s.DrawTextCentered(mid, fmt.Sprintf("Final score: %d", snap.Score), core.ColorHUD)
		s.DrawTextCentered(mid+1, restartHint, core.ColorMuted)
	case f.Paused:
		s.DrawTextCentered(mid, "Paused", core.ColorHUD)
	}
}

func drawHUD(s *core.Screen, f Frame) {
	snap := f.Snapshot
	s.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorHUD)
	s.DrawText(16, 0, fmt.Sprintf("Speed: %.1fx", snap.Multiplier), core.ColorHUD)

	if f.Status.Muted {
		s.DrawText(s.Width()-7, 0, "muted", core.ColorMuted)
	}
}

const restartHint = "Press space to play again"

// drawGameOverBox frames the three game over lines, clearing what is behind them.
func drawGameOverBox(s *core.Screen, mid int) {
	w := len(restartHint) + 4
	r := core.NewCellRect((s.Width()-w)/2, mid-2, w, 5)
	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, core.ColorMuted)
}

func drawPending(s *core.Screen, st session.Status, y int) {
	switch st.Phase {
	case session.PhaseSettling:
		s.DrawTextCentered(y, "Get ready...", core.ColorHUD)
	default:
		msg := "Loading..."
		if st.Gate == assets.StateRetrying {
			msg = fmt.Sprintf("Loading assets, retry %d...", st.Attempts)
		}
		s.DrawTextCentered(y, msg, core.ColorMuted)
	}
}

// drawSprite stretches sp over r. Spaces are transparent.
func drawSprite(s *core.Screen, sp assets.Sprite, r core.CellRect, c core.Color) {
	for dy := 0; dy < r.H; dy++ {
		for dx := 0; dx < r.W; dx++ {
			if ch := sp.Sample(dx, dy, r.W, r.H); ch != ' ' {
				s.SetColored(r.X+dx, r.Y+dy, ch, c)
			}
		}
	}
}
