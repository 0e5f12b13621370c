package sim

import "math"

// stepObstacle moves the obstacle and recycles it once it has fully left the
// screen. Respawn position, score and base speed change together.
// Returns true if the obstacle was recycled.
func (s *Simulation) stepObstacle() bool {
	o := &s.state.Obstacle
	o.X += o.Speed * s.state.Multiplier

	if o.X >= -o.Width {
		return false
	}

	ocfg := s.cfg.Obstacle
	o.X = s.cfg.World.Width + s.rng.Float64()*ocfg.RespawnJitter
	s.state.Score++
	o.Speed = math.Max(o.Speed-ocfg.SpeedStep, ocfg.MaxSpeed)
	return true
}
