package sim

// collides reports whether the player and obstacle rectangles overlap.
func collides(p Player, o Obstacle) bool {
	return p.Rect().Intersects(o.Rect())
}
