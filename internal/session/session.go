// Package session owns one simulation and sequences it with the asset gate,
// resets and sound cues. Frontends drive it with Tick and input calls from a
// single goroutine.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/audio"
	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/sim"
)

// Phase is the session's lifecycle stage.
type Phase int

const (
	PhaseStarting  Phase = iota // waiting for assets before the first frame
	PhaseRunning                // frames advance the simulation
	PhaseResetting              // reset applied, waiting for assets
	PhaseSettling               // assets ready, waiting out the settle delay
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseResetting:
		return "resetting"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Status is what a renderer needs beyond the simulation snapshot.
type Status struct {
	Phase    Phase
	Gate     assets.State
	Attempts int
	Err      error
	Resets   int
	Muted    bool
}

// Pending reports whether a start or reset is still in flight.
func (s Status) Pending() bool {
	return s.Phase != PhaseRunning
}

// Options configures a Session.
type Options struct {
	Seed   int64
	Prober assets.Prober
	Audio  audio.Player
	Logger *log.Logger
}

// Session is not safe for concurrent use.
type Session struct {
	sim    *sim.Simulation
	gate   *assets.Gate
	audio  audio.Player
	logger *log.Logger
	seeds  *rand.Rand
	settle time.Duration

	phase    Phase
	resumeAt time.Time
	resets   int
}

// New creates a session. Call Start before the first Tick.
func New(cfg config.RunnerConfig, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prober := opts.Prober
	if prober == nil {
		prober = assets.ProbeFunc(func() error { return nil })
	}
	player := opts.Audio
	if player == nil {
		player = &audio.Nop{}
	}

	return &Session{
		sim:    sim.New(cfg, opts.Seed),
		gate:   assets.NewGate(prober, cfg.Reset.RetryInterval(), logger),
		audio:  player,
		logger: logger,
		seeds:  rand.New(rand.NewSource(opts.Seed)),
		settle: cfg.Reset.SettleDelay(),
	}
}

// Start begins waiting for assets. The first start has no settle delay.
func (s *Session) Start(now time.Time) {
	s.phase = PhaseStarting
	s.gate.Begin(now)
	s.logger.Debug("waiting for assets")
}

// Tick runs one frame. While a start or reset is pending it only advances
// the pending sequence; gameplay frames resume once it completes.
func (s *Session) Tick(now time.Time) sim.StepResult {
	switch s.phase {
	case PhaseStarting:
		if s.gate.Poll(now) == assets.StateReady {
			s.phase = PhaseRunning
			s.logger.Info("game started", "attempts", s.gate.Attempts())
		}
		return sim.StepResult{Frozen: true}

	case PhaseResetting:
		if s.gate.Poll(now) == assets.StateReady {
			s.phase = PhaseSettling
			s.resumeAt = now.Add(s.settle)
		}
		return sim.StepResult{Frozen: true}

	case PhaseSettling:
		if !now.Before(s.resumeAt) {
			s.phase = PhaseRunning
			s.logger.Info("reset complete", "resets", s.resets)
		}
		return sim.StepResult{Frozen: true}
	}

	res := s.sim.Advance()
	if res.Recycled {
		st := s.sim.State()
		s.logger.Debug("obstacle recycled",
			"score", st.Score,
			"speed", st.Obstacle.Speed,
			"multiplier", st.Multiplier,
		)
	}
	if res.Collided {
		s.logger.Info("game over", "score", res.Score)
		s.audio.Play(audio.CueGameOver)
	}
	return res
}

// Primary handles the jump key: a jump while running, a reset once the
// episode has ended. Input during a pending start or reset is ignored.
// Returns whether the input had an effect.
func (s *Session) Primary(now time.Time) bool {
	if s.phase != PhaseRunning {
		return false
	}
	if s.sim.Terminal() {
		return s.RequestReset(now)
	}
	if s.sim.Jump() {
		s.audio.Play(audio.CueJump)
		return true
	}
	return false
}

// RequestReset restarts the episode: state resets immediately, then the
// session waits for assets and the settle delay before resuming.
// Returns false without side effects if a start or reset is already pending.
func (s *Session) RequestReset(now time.Time) bool {
	if s.phase != PhaseRunning {
		return false
	}

	prev := s.sim.State().Score
	s.sim.Reset(s.seeds.Int63())
	s.resets++
	s.phase = PhaseResetting
	s.gate.Begin(now)

	s.logger.Info("reset requested", "previous_score", prev, "resets", s.resets)
	return true
}

// ToggleMute flips sound cues and returns the new mute state.
func (s *Session) ToggleMute() bool {
	return s.audio.ToggleMute()
}

// Snapshot returns the simulation view for rendering.
func (s *Session) Snapshot() sim.Snapshot {
	return s.sim.Snapshot()
}

// State returns a copy of the full simulation state.
func (s *Session) State() sim.State {
	return s.sim.State()
}

// Status returns the lifecycle view for rendering.
func (s *Session) Status() Status {
	return Status{
		Phase:    s.phase,
		Gate:     s.gate.State(),
		Attempts: s.gate.Attempts(),
		Err:      s.gate.Err(),
		Resets:   s.resets,
		Muted:    s.audio.Muted(),
	}
}

// Close releases the audio device.
func (s *Session) Close() {
	s.audio.Close()
}
