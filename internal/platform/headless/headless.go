// Package headless drives a session without a display, on a simulated clock.
// It is used for smoke runs, benchmarks of difficulty settings and tests.
package headless

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pika-runner/internal/session"
)

// autopilotLead is how many frames ahead of contact the autopilot jumps.
const autopilotLead = 6

// Options configures a headless run.
type Options struct {
	// Interval is the simulated time between frames.
	Interval time.Duration
	// MaxFrames bounds the run, including frames spent waiting on resets.
	MaxFrames int
	// Episodes is how many game overs to play through; 0 means 1.
	Episodes int
	// Autopilot jumps over obstacles instead of running straight.
	Autopilot bool
	// Start is the simulated clock's origin.
	Start time.Time
}

// Report summarizes a headless run.
type Report struct {
	Frames    int
	Episodes  int
	Scores    []int
	BestScore int
	Jumps     int
	LastScore int  // score of the episode in progress when the run stopped
	Finished  bool // every requested episode ended before MaxFrames
}

// Run plays the session until the requested episodes end, MaxFrames is
// reached or ctx is cancelled. The session must not have been started.
func Run(ctx context.Context, s *session.Session, opts Options, logger *log.Logger) (Report, error) {
	episodes := opts.Episodes
	if episodes <= 0 {
		episodes = 1
	}

	var rep Report
	now := opts.Start
	s.Start(now)

	for rep.Frames < opts.MaxFrames {
		if err := ctx.Err(); err != nil {
			rep.LastScore = s.State().Score
			return rep, err
		}

		res := s.Tick(now)
		rep.Frames++

		if res.Collided {
			rep.Episodes++
			rep.Scores = append(rep.Scores, res.Score)
			rep.BestScore = max(rep.BestScore, res.Score)
			logger.Info("episode finished", "episode", rep.Episodes, "score", res.Score, "frame", rep.Frames)

			if rep.Episodes >= episodes {
				rep.Finished = true
				rep.LastScore = res.Score
				return rep, nil
			}
		}

		now = now.Add(opts.Interval)

		if s.Status().Pending() {
			continue
		}
		if s.State().Terminal {
			s.Primary(now)
			continue
		}
		if opts.Autopilot && shouldJump(s) && s.Primary(now) {
			rep.Jumps++
		}
	}

	rep.LastScore = s.State().Score
	return rep, nil
}

// shouldJump reports whether the obstacle is close enough that a jump now
// clears it.
func shouldJump(s *session.Session) bool {
	st := s.State()
	if st.Player.Airborne {
		return false
	}

	gap := st.Obstacle.X - (st.Player.X + st.Player.Width)
	step := -st.Obstacle.Speed * st.Multiplier
	return gap >= 0 && gap <= autopilotLead*step
}
