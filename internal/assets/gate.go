package assets

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prober checks whether a resource is usable. A nil error means ready.
// Probe is called again after every failure, so implementations should
// re-read their sources rather than cache a failed result.
type Prober interface {
	Probe() error
}

// ProbeFunc adapts a function to Prober.
type ProbeFunc func() error

// Probe calls f.
func (f ProbeFunc) Probe() error { return f() }

// All combines probers; it is ready only when every prober is ready.
// Every prober runs on each call so all of them get a fresh read.
func All(probers ...Prober) Prober {
	return ProbeFunc(func() error {
		var errs []error
		for _, p := range probers {
			if err := p.Probe(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// State is the readiness gate's current phase.
type State int

const (
	StateLoading  State = iota // Begin called, first probe pending
	StateReady                 // last probe succeeded
	StateRetrying              // last probe failed, waiting for the retry interval
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRetrying:
		return "retrying"
	default:
		return "unknown"
	}
}

// Gate polls a Prober on a fixed interval until it reports ready.
// The caller supplies the clock so the gate can be driven by a frame loop
// or a simulated clock. READY is sticky until the next Begin.
type Gate struct {
	prober   Prober
	interval time.Duration
	logger   *log.Logger

	state     State
	nextProbe time.Time
	attempts  int
	lastErr   error
}

// NewGate creates a gate in the loading state. Call Begin before polling.
func NewGate(p Prober, interval time.Duration, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gate{
		prober:   p,
		interval: interval,
		logger:   logger,
	}
}

// Begin starts a new readiness cycle; the next Poll probes immediately.
func (g *Gate) Begin(now time.Time) {
	g.state = StateLoading
	g.nextProbe = now
	g.attempts = 0
	g.lastErr = nil
}

// Poll probes if a probe is due and returns the resulting state.
func (g *Gate) Poll(now time.Time) State {
	if g.state == StateReady || now.Before(g.nextProbe) {
		return g.state
	}

	g.attempts++
	if err := g.prober.Probe(); err != nil {
		g.lastErr = err
		g.state = StateRetrying
		g.nextProbe = now.Add(g.interval)
		g.logger.Warn("assets not ready, retrying",
			"attempt", g.attempts,
			"retry_in", g.interval,
			"error", err,
		)
		return g.state
	}

	g.lastErr = nil
	g.state = StateReady
	if g.attempts > 1 {
		g.logger.Info("assets ready", "attempts", g.attempts)
	}
	return g.state
}

// State returns the state reached by the last Poll or Begin.
func (g *Gate) State() State { return g.state }

// Attempts returns how many probes ran since Begin.
func (g *Gate) Attempts() int { return g.attempts }

// Err returns the last probe failure, or nil.
func (g *Gate) Err() error { return g.lastErr }
