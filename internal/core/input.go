package core

// Action represents a semantic game action, abstracted from physical key presses
// and phone taps. Games work with these intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - tilt left (keyboard emulation)
	ActionRight          // Right arrow, D - tilt right (keyboard emulation)
	ActionFire           // Space, phone tap - fire a projectile
	ActionRestart        // R key, phone restart button - restart after game over
	ActionPause          // P, Escape - pause/unpause game
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one platform tick.
// Besides discrete actions it carries at most one tilt sample.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	tilt    float64
	hasTilt bool
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

// SetTilt stores a normalized tilt reading for this frame.
// Positive values steer right. A later call replaces an earlier one.
func (f *InputFrame) SetTilt(reading float64) {
	f.tilt = reading
	f.hasTilt = true
}

// Tilt returns the tilt reading and whether one was sampled this frame.
func (f InputFrame) Tilt() (float64, bool) {
	return f.tilt, f.hasTilt
}

// Clear resets all actions and the tilt sample for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.tilt = 0
	f.hasTilt = false
}
