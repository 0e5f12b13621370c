package core

// Color represents a foreground color for a screen cell.
// Frontends map these to concrete palettes (terminal theme, window RGBA).
type Color uint8

// Colors used by the runner's renderers.
const (
	ColorDefault Color = iota
	ColorPlayer        // Pikachu sprite
	ColorObstacle      // Tree sprite
	ColorPlaceholder   // Player drawn without a sprite
	ColorGround
	ColorHUD
	ColorAlert // Game over banner
	ColorMuted // Help and status lines
)
