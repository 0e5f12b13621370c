package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/pika-runner/internal/config"
)

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	return New(config.DefaultRunnerConfig(), 42)
}

// primeRecycle puts the obstacle where the next Advance pushes it off-screen.
func primeRecycle(s *Simulation) {
	s.state.Obstacle.X = -s.state.Obstacle.Width + 0.5
}

func TestResetInitialState(t *testing.T) {
	s := newTestSim(t)

	// Dirty every field first
	s.Jump()
	for i := 0; i < 10; i++ {
		primeRecycle(s)
		s.Advance()
	}
	s.state.Terminal = true

	s.Reset(7)
	st := s.State()

	if st.Player.X != 50 || st.Player.Y != 150 {
		t.Errorf("player at (%v, %v), expected (50, 150)", st.Player.X, st.Player.Y)
	}
	if st.Player.VelY != 0 || st.Player.Airborne || !st.Player.CanJump {
		t.Errorf("player motion not reset: %+v", st.Player)
	}
	if st.Obstacle.X != 800 || st.Obstacle.Y != 150 {
		t.Errorf("obstacle at (%v, %v), expected (800, 150)", st.Obstacle.X, st.Obstacle.Y)
	}
	if st.Obstacle.Speed != -3 {
		t.Errorf("obstacle speed = %v, expected -3", st.Obstacle.Speed)
	}
	if st.Score != 0 || st.Multiplier != 1.0 || st.Terminal || st.Frame != 0 {
		t.Errorf("counters not reset: score=%d mult=%v terminal=%v frame=%d",
			st.Score, st.Multiplier, st.Terminal, st.Frame)
	}
}

func TestGravityClampsToGround(t *testing.T) {
	s := newTestSim(t)

	res := s.Advance()
	st := s.State()

	if st.Player.Y != 150 || st.Player.VelY != 0 {
		t.Errorf("grounded player should stay clamped, got y=%v vy=%v", st.Player.Y, st.Player.VelY)
	}
	if res.Landed {
		t.Error("a grounded player should not report landing")
	}
}

func TestJumpArc(t *testing.T) {
	s := newTestSim(t)

	if !s.Jump() {
		t.Fatal("Jump() from the ground should succeed")
	}
	if s.Jump() {
		t.Error("second Jump() while airborne should be ignored")
	}

	s.Advance()
	st := s.State()
	if math.Abs(st.Player.VelY-(-11.4)) > 1e-9 {
		t.Errorf("velocity after one frame = %v, expected -11.4", st.Player.VelY)
	}
	if math.Abs(st.Player.Y-138.6) > 1e-9 {
		t.Errorf("y after one frame = %v, expected 138.6", st.Player.Y)
	}
	if !st.Player.Airborne || st.Player.CanJump {
		t.Errorf("player should be airborne without jump, got %+v", st.Player)
	}

	landed := false
	for i := 0; i < 60 && !landed; i++ {
		if s.Jump() {
			t.Fatalf("Jump() succeeded mid-air at frame %d", i)
		}
		landed = s.Advance().Landed
	}
	if !landed {
		t.Fatal("player never landed")
	}

	st = s.State()
	if st.Player.Y != 150 || st.Player.VelY != 0 || st.Player.Airborne || !st.Player.CanJump {
		t.Errorf("landing should clamp and re-arm jump, got %+v", st.Player)
	}
	if !s.Jump() {
		t.Error("Jump() after landing should succeed")
	}
}

func TestCeilingClamp(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Physics.JumpPower = -200
	s := New(cfg, 1)

	s.Jump()
	s.Advance()
	st := s.State()

	if st.Player.Y != 0 || st.Player.VelY != 0 {
		t.Errorf("ceiling clamp should give y=0 vy=0, got y=%v vy=%v", st.Player.Y, st.Player.VelY)
	}
	if !st.Player.Airborne || st.Player.CanJump {
		t.Errorf("ceiling contact must not re-arm the jump, got %+v", st.Player)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	s := newTestSim(t)
	rng := rand.New(rand.NewSource(99))

	for frame := 0; frame < 5000 && !s.Terminal(); frame++ {
		if rng.Intn(8) == 0 {
			s.Jump()
		}
		s.Advance()
		p := s.State().Player

		if p.Y < 0 || p.Y > 150 {
			t.Fatalf("frame %d: y = %v outside [0, 150]", frame, p.Y)
		}
		if p.Y == 150 && (p.VelY != 0 || p.Airborne) {
			t.Fatalf("frame %d: ground clamp left vy=%v airborne=%v", frame, p.VelY, p.Airborne)
		}
	}
}

func TestRecycle(t *testing.T) {
	s := newTestSim(t)
	primeRecycle(s)

	res := s.Advance()
	st := s.State()

	if !res.Recycled {
		t.Fatal("obstacle past the left edge should recycle")
	}
	if st.Score != 1 || res.Score != 1 {
		t.Errorf("score = %d (result %d), expected 1", st.Score, res.Score)
	}
	if st.Obstacle.X < 800 || st.Obstacle.X >= 1000 {
		t.Errorf("respawn x = %v, expected within [800, 1000)", st.Obstacle.X)
	}
	if math.Abs(st.Obstacle.Speed-(-3.1)) > 1e-9 {
		t.Errorf("speed after recycle = %v, expected -3.1", st.Obstacle.Speed)
	}
}

func TestRecycleOncePerPass(t *testing.T) {
	s := newTestSim(t)
	s.state.Obstacle.X = 300 // well ahead of the player, clear of collision while it moves

	recycles := 0
	for i := 0; i < 2000 && recycles < 3; i++ {
		if s.State().Obstacle.X < 200 && s.State().Obstacle.X > 0 {
			// Teleport past the player so the pass is collision-free
			s.state.Obstacle.X = -s.state.Obstacle.Width + 1
		}
		before := s.State().Score
		res := s.Advance()
		after := s.State().Score
		if res.Recycled {
			recycles++
			if after != before+1 {
				t.Fatalf("recycle changed score by %d", after-before)
			}
		} else if after != before {
			t.Fatalf("score changed without a recycle: %d -> %d", before, after)
		}
	}
	if recycles != 3 {
		t.Errorf("expected 3 recycles, got %d", recycles)
	}
}

func TestObstacleSpeedFloor(t *testing.T) {
	s := newTestSim(t)
	s.state.Obstacle.Speed = -5.95

	primeRecycle(s)
	s.Advance()
	if got := s.State().Obstacle.Speed; got != -6 {
		t.Errorf("speed = %v, expected floor -6", got)
	}

	primeRecycle(s)
	s.Advance()
	if got := s.State().Obstacle.Speed; got != -6 {
		t.Errorf("speed = %v, expected to stay at -6", got)
	}
}

func TestObstacleMovesWithMultiplier(t *testing.T) {
	s := newTestSim(t)
	s.state.Multiplier = 2.0

	s.Advance()
	if got := s.State().Obstacle.X; got != 794 {
		t.Errorf("obstacle x = %v, expected 800 - 3*2 = 794", got)
	}
}

func TestCollision(t *testing.T) {
	tests := []struct {
		name      string
		obstacleX float64
		terminal  bool
	}{
		{"overlapping", 0, true},
		{"apart", 100, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSim(t)
			s.state.Player.X = 0
			s.state.Obstacle.X = tc.obstacleX
			s.state.Obstacle.Speed = 0

			res := s.Advance()
			if s.Terminal() != tc.terminal || res.Collided != tc.terminal {
				t.Errorf("terminal = %v (collided %v), expected %v", s.Terminal(), res.Collided, tc.terminal)
			}
		})
	}
}

func TestCollisionFrameCompletes(t *testing.T) {
	s := newTestSim(t)
	s.state.Obstacle.X = 84 // one step from overlapping the player's right edge at 82

	res := s.Advance()
	st := s.State()

	if !res.Collided {
		t.Fatalf("expected collision, obstacle at %v", st.Obstacle.X)
	}
	if st.Frame != 1 || st.Obstacle.X != 81 {
		t.Errorf("collision frame should still move everything, frame=%d x=%v", st.Frame, st.Obstacle.X)
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	s := newTestSim(t)
	s.state.Obstacle.X = 85 // lands exactly on the player's right edge

	if res := s.Advance(); res.Collided {
		t.Errorf("edge contact at x=%v should not collide", s.State().Obstacle.X)
	}
}

func TestTerminalFreezes(t *testing.T) {
	s := newTestSim(t)
	s.state.Obstacle.X = 60
	s.Advance()
	if !s.Terminal() {
		t.Fatal("setup should collide")
	}

	frozen := s.State()
	for i := 0; i < 100; i++ {
		if res := s.Advance(); !res.Frozen {
			t.Fatal("Advance while terminal should report Frozen")
		}
		if s.Jump() {
			t.Fatal("Jump while terminal should be ignored")
		}
	}
	if s.State() != frozen {
		t.Errorf("terminal state changed:\nbefore %+v\nafter  %+v", frozen, s.State())
	}

	s.Reset(1)
	if s.Terminal() {
		t.Error("Reset should leave the terminal state")
	}
}

func TestDifficultyFollowsScore(t *testing.T) {
	s := newTestSim(t)

	primeRecycle(s)
	s.Advance()
	if st := s.State(); st.Score != 1 || st.Multiplier != 1.0 {
		t.Fatalf("after one recycle: score=%d mult=%v, expected 1/1.0", st.Score, st.Multiplier)
	}

	for s.State().Score < 4 {
		primeRecycle(s)
		s.Advance()
	}
	if m := s.State().Multiplier; m != 1.0 {
		t.Fatalf("multiplier at score 4 = %v, expected 1.0", m)
	}

	// The frame that reaches score 5 also applies the new multiplier
	primeRecycle(s)
	s.Advance()
	if st := s.State(); st.Score != 5 || st.Multiplier != 1.5 {
		t.Errorf("after crossing 5: score=%d mult=%v, expected 5/1.5", st.Score, st.Multiplier)
	}

	for s.State().Score < 40 {
		primeRecycle(s)
		s.Advance()
	}
	if m := s.State().Multiplier; m != 4.0 {
		t.Errorf("multiplier at score 40 = %v, expected cap 4.0", m)
	}

	s.Reset(3)
	if m := s.State().Multiplier; m != 1.0 {
		t.Errorf("Reset multiplier = %v, expected 1.0", m)
	}
}

func TestRespawnDeterminism(t *testing.T) {
	a := New(config.DefaultRunnerConfig(), 1234)
	b := New(config.DefaultRunnerConfig(), 1234)

	for i := 0; i < 20; i++ {
		primeRecycle(a)
		primeRecycle(b)
		a.Advance()
		b.Advance()
		if a.State().Obstacle.X != b.State().Obstacle.X {
			t.Fatalf("recycle %d: respawn differs %v vs %v", i, a.State().Obstacle.X, b.State().Obstacle.X)
		}
	}
}

func TestSnapshotBounce(t *testing.T) {
	s := newTestSim(t)
	s.Advance()
	s.Advance()

	snap := s.Snapshot()
	want := math.Sin(2*0.1) * 2
	if math.Abs(snap.Bounce-want) > 1e-9 {
		t.Errorf("grounded bounce = %v, expected %v", snap.Bounce, want)
	}

	s.Jump()
	s.Advance()
	if b := s.Snapshot().Bounce; b != 0 {
		t.Errorf("airborne bounce = %v, expected 0", b)
	}
	if !s.Snapshot().Airborne {
		t.Error("snapshot should report airborne")
	}
}
