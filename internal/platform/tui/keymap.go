package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-quest/internal/core"
)

// KeyMap defines the key bindings for play. It also drives the help bar.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Primary  key.Binding
	Interact key.Binding
	Toggle   key.Binding
	Start    key.Binding
	Shot     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/a/s/d", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
		),
		Primary: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "attack"),
		),
		Interact: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "open"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "weapon"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Shot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Primary, k.Interact, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Primary, k.Interact, k.Toggle},
		{k.Start, k.Shot, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Primary):
		return core.ActionPrimary, false
	case key.Matches(msg, k.Interact):
		return core.ActionInteract, false
	case key.Matches(msg, k.Toggle):
		return core.ActionToggleMode, false
	case key.Matches(msg, k.Start):
		return core.ActionStart, false
	}
	return core.ActionNone, false
}

// Terminals report key presses and auto-repeats but never releases, so a
// movement key counts as held until no repeat arrives within its window.
// The first press waits out the typical auto-repeat delay; later repeats
// only need to cover the repeat interval.
const (
	firstHoldWindow  = 550 * time.Millisecond
	repeatHoldWindow = 120 * time.Millisecond
)

// HeldKeys tracks emulated key-down state for movement keys.
type HeldKeys struct {
	until map[core.Action]time.Time
}

// NewHeldKeys creates an empty set.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{until: make(map[core.Action]time.Time)}
}

// Press registers a press or auto-repeat of a movement key at now.
// Pressing a direction releases its opposite immediately.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if !a.IsMovement() {
		return
	}
	delete(h.until, opposite(a))

	window := firstHoldWindow
	if deadline, ok := h.until[a]; ok && !now.After(deadline) {
		window = repeatHoldWindow
	}
	next := now.Add(window)
	if deadline, ok := h.until[a]; ok && deadline.After(next) {
		next = deadline
	}
	h.until[a] = next
}

// Expire drops keys whose window has passed.
func (h *HeldKeys) Expire(now time.Time) {
	for a, deadline := range h.until {
		if now.After(deadline) {
			delete(h.until, a)
		}
	}
}

// ReleaseAll forgets every held key.
func (h *HeldKeys) ReleaseAll() {
	clear(h.until)
}

// Apply copies the held set into the frame.
func (h *HeldKeys) Apply(f *core.InputFrame) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		_, down := h.until[a]
		f.Hold(a, down)
	}
}

// IsHeld reports whether a is currently held.
func (h *HeldKeys) IsHeld(a core.Action) bool {
	_, ok := h.until[a]
	return ok
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
