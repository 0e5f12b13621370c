package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/pika-runner/internal/config"
)

// Simulation owns the runner state and advances it one frame at a time.
type Simulation struct {
	cfg   config.RunnerConfig
	table *config.SpeedTable
	rng   *rand.Rand
	state State
}

// New creates a simulation in its initial state. cfg should already have
// passed Validate.
func New(cfg config.RunnerConfig, seed int64) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		table: config.NewSpeedTable(cfg.Difficulty),
	}
	s.Reset(seed)
	return s
}

// Reset reinitializes every part of the state and reseeds the respawn RNG.
func (s *Simulation) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.state = State{
		Player: Player{
			X:       s.cfg.Player.X,
			Y:       s.cfg.Physics.GroundY,
			Width:   s.cfg.Player.Width,
			Height:  s.cfg.Player.Height,
			CanJump: true,
		},
		Obstacle: Obstacle{
			X:      s.cfg.Obstacle.StartX,
			Y:      s.cfg.Obstacle.Y,
			Width:  s.cfg.Obstacle.Width,
			Height: s.cfg.Obstacle.Height,
			Speed:  s.cfg.Obstacle.BaseSpeed,
		},
		Multiplier: s.table.Base(),
	}
}

// Jump starts a jump if the player is grounded and the episode is running.
// Returns false when the input was ignored.
func (s *Simulation) Jump() bool {
	p := &s.state.Player
	if s.state.Terminal || !p.CanJump {
		return false
	}
	p.VelY = s.cfg.Physics.JumpPower
	p.Airborne = true
	p.CanJump = false
	return true
}

// Advance runs one frame: physics, obstacle, difficulty, collision.
// Once terminal, Advance changes nothing until Reset.
func (s *Simulation) Advance() StepResult {
	if s.state.Terminal {
		return StepResult{Frozen: true, Score: s.state.Score}
	}

	var res StepResult
	res.Landed = stepPhysics(&s.state.Player, s.cfg.Physics)
	s.state.Frame++

	res.Recycled = s.stepObstacle()

	// The table is validated non-decreasing; max keeps the multiplier
	// monotonic within an episode even for a hand-built config.
	if s.table.IsEnabled() {
		s.state.Multiplier = math.Max(s.state.Multiplier, s.table.Multiplier(s.state.Score))
	}

	if collides(s.state.Player, s.state.Obstacle) {
		s.state.Terminal = true
		res.Collided = true
	}

	res.Score = s.state.Score
	return res
}

// Terminal reports whether the episode has ended.
func (s *Simulation) Terminal() bool {
	return s.state.Terminal
}

// State returns a copy of the current state.
func (s *Simulation) State() State {
	return s.state
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.RunnerConfig {
	return s.cfg
}

// Snapshot returns the read-only view renderers draw from.
func (s *Simulation) Snapshot() Snapshot {
	st := s.state
	return Snapshot{
		Player:     st.Player.Rect(),
		Obstacle:   st.Obstacle.Rect(),
		Airborne:   st.Player.Airborne,
		Bounce:     s.bounce(),
		Score:      st.Score,
		Multiplier: st.Multiplier,
		Terminal:   st.Terminal,
		Frame:      st.Frame,
	}
}

// bounce returns the idle sprite offset while the player rests on the ground.
func (s *Simulation) bounce() float64 {
	if s.state.Player.Y != s.cfg.Physics.GroundY {
		return 0
	}
	b := s.cfg.Bounce
	return math.Sin(float64(s.state.Frame)*b.Frequency) * b.Amplitude
}
