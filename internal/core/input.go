package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionThrustOn           // W, Up arrow - engage engine (latched)
	ActionThrustOff          // key release emulation - disengage engine
	ActionRotateLeft         // A, Left arrow - turn counter-clockwise this tick
	ActionRotateRight        // D, Right arrow - turn clockwise this tick
	ActionFire               // Space - launch a missile
	ActionPauseToggle        // P, Escape - pause/unpause
	ActionQuit               // Q, Ctrl+C - end the session
	ActionStart              // Enter - start a run from the menu
	ActionAcknowledge        // Enter, B - leave the game over screen
	ActionToggleMode         // M, Tab - switch between classic and modern in the menu
	ActionMoveUp             // directional steering (modern)
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionThrustOn:
		return "ThrustOn"
	case ActionThrustOff:
		return "ThrustOff"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionFire:
		return "Fire"
	case ActionPauseToggle:
		return "PauseToggle"
	case ActionQuit:
		return "Quit"
	case ActionStart:
		return "Start"
	case ActionAcknowledge:
		return "Acknowledge"
	case ActionToggleMode:
		return "ToggleMode"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	default:
		return "Unknown"
	}
}

// InputFrame represents the player's input during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Frame builds an input frame holding the given actions.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
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

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
