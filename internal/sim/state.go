// Package sim implements the runner's per-frame simulation: player physics,
// obstacle recycling, score-driven difficulty and collision.
//
// A Simulation is owned by a single caller and is not safe for concurrent use.
package sim

import (
	"github.com/vovakirdan/pika-runner/internal/core"
)

// Player is the jumping character. X and size are fixed for an episode.
type Player struct {
	X, Y     float64 // Top-left corner in world units
	VelY     float64 // Vertical velocity, negative = up
	Width    float64
	Height   float64
	Airborne bool // Between a jump and the next ground contact
	CanJump  bool // Only true while grounded
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is the single tree scrolling towards the player.
type Obstacle struct {
	X, Y   float64
	Width  float64
	Height float64
	Speed  float64 // Base horizontal speed per frame, negative = leftward
}

// Rect returns the obstacle's collision rectangle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// State is the complete simulation state for one episode.
type State struct {
	Player     Player
	Obstacle   Obstacle
	Score      int     // Obstacles recycled this episode
	Multiplier float64 // Difficulty multiplier applied to Obstacle.Speed
	Terminal   bool    // Set by a collision, cleared only by Reset
	Frame      int     // Frames advanced; drives the idle bounce only
}

// StepResult describes what happened during one Advance call.
type StepResult struct {
	Frozen   bool // State was terminal; nothing moved
	Landed   bool // Player touched the ground after being airborne
	Recycled bool // Obstacle wrapped around and score increased
	Collided bool // This frame moved the simulation into the terminal state
	Score    int
}

// Snapshot is a read-only view for renderers.
type Snapshot struct {
	Player     core.Rect
	Obstacle   core.Rect
	Airborne   bool
	Bounce     float64 // Cosmetic vertical sprite offset
	Score      int
	Multiplier float64
	Terminal   bool
	Frame      int
}
