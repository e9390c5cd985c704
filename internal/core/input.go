package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move up (held)
	ActionDown              // S, Down arrow - move down (held)
	ActionLeft              // A, Left arrow - move left (held)
	ActionRight             // D, Right arrow - move right (held)
	ActionPrimary           // Left click, Space - swing or cast
	ActionInteract          // E - open chest
	ActionToggleMode        // R - switch melee/ranged
	ActionStart             // Enter - leave the title menu
	ActionRestart           // Enter/R on the game-over screen
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPrimary:
		return "Primary"
	case ActionInteract:
		return "Interact"
	case ActionToggleMode:
		return "ToggleMode"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action is one of the four held directions.
func (a Action) IsMovement() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame is the normalized input snapshot for a single simulation tick.
// Actions holds discrete events that fired since the previous tick; Held
// holds movement keys that are currently down. Pointer is in screen space.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Pointer Vec2
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks a discrete action as triggered for this frame.
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

// Hold marks a movement key as held (or released when down is false).
func (f *InputFrame) Hold(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the given movement key is currently down.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Axis returns the raw movement axes from held keys, each in {-1, 0, 1}.
func (f InputFrame) Axis() Vec2 {
	var v Vec2
	if f.IsHeld(ActionUp) {
		v.Y--
	}
	if f.IsHeld(ActionDown) {
		v.Y++
	}
	if f.IsHeld(ActionLeft) {
		v.X--
	}
	if f.IsHeld(ActionRight) {
		v.X++
	}
	return v
}

// Clear resets discrete actions for the next frame.
// Held keys and the pointer persist until the platform changes them.
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
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Pointer = f.Pointer
	return clone
}
