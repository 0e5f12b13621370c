package sim

import "github.com/vovakirdan/pika-runner/internal/config"

// stepPhysics integrates gravity and clamps the player to [ceiling, ground].
// Returns true if the player landed this frame.
func stepPhysics(p *Player, phys config.PhysicsConfig) bool {
	p.VelY += phys.Gravity
	p.Y += p.VelY

	if p.Y >= phys.GroundY {
		landed := p.Airborne
		p.Y = phys.GroundY
		p.VelY = 0
		p.Airborne = false
		p.CanJump = true
		return landed
	}

	// Ceiling bounce: the jump is still in progress.
	if p.Y < phys.CeilingY {
		p.Y = phys.CeilingY
		p.VelY = 0
	}
	return false
}
