package core

// Action represents a semantic input, abstracted from physical key presses.
// Only ActionPrimary and ActionReset reach the simulation; the rest are
// handled by the frontend.
type Action int

const (
	ActionNone    Action = iota
	ActionPrimary        // Space, Up, W - jump while running, restart after game over
	ActionReset          // R - explicit reset at any time
	ActionPause          // P, Escape - frontend stops driving frames
	ActionTheme          // T - toggle dark/light theme
	ActionMute           // M - toggle sound cues
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionReset:
		return "Reset"
	case ActionPause:
		return "Pause"
	case ActionTheme:
		return "Theme"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
