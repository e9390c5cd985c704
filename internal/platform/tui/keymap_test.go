package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-quest/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPrimary, false},
		{"e", runeKey('e'), core.ActionInteract, false},
		{"r", runeKey('r'), core.ActionToggleMode, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("action = %v, expected %v", action, tc.action)
			}
			if quit != tc.quit {
				t.Errorf("quit = %v, expected %v", quit, tc.quit)
			}
		})
	}
}

func TestHeldKeysFirstPressWindow(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)

	h.Expire(t0.Add(500 * time.Millisecond))
	if !h.IsHeld(core.ActionLeft) {
		t.Fatal("key released before the auto-repeat delay passed")
	}

	h.Expire(t0.Add(600 * time.Millisecond))
	if h.IsHeld(core.ActionLeft) {
		t.Error("key still held with no repeat")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionUp, t0)
	// An early repeat never shortens the first window
	h.Press(core.ActionUp, t0.Add(100*time.Millisecond))
	h.Expire(t0.Add(540 * time.Millisecond))
	if !h.IsHeld(core.ActionUp) {
		t.Fatal("early repeat shortened the hold")
	}

	h.Press(core.ActionUp, t0.Add(500*time.Millisecond))
	h.Expire(t0.Add(610 * time.Millisecond))
	if !h.IsHeld(core.ActionUp) {
		t.Fatal("repeat did not extend the hold")
	}

	h.Expire(t0.Add(700 * time.Millisecond))
	if h.IsHeld(core.ActionUp) {
		t.Error("key still held after the repeat window")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionUp, t0)
	h.Press(core.ActionRight, t0.Add(10*time.Millisecond))

	if h.IsHeld(core.ActionLeft) {
		t.Error("left still held after pressing right")
	}
	if !h.IsHeld(core.ActionRight) || !h.IsHeld(core.ActionUp) {
		t.Error("expected right and up held")
	}
}

func TestHeldKeysIgnoresNonMovement(t *testing.T) {
	h := NewHeldKeys()
	h.Press(core.ActionPrimary, time.Unix(1000, 0))
	if h.IsHeld(core.ActionPrimary) {
		t.Error("discrete action became held")
	}
}

func TestHeldKeysApply(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(1000, 0)
	f := core.NewInputFrame()
	f.Hold(core.ActionDown, true)

	h.Press(core.ActionRight, t0)
	h.Apply(&f)

	if got := f.Axis(); got != core.V(1, 0) {
		t.Errorf("Axis() = %v, expected (1, 0)", got)
	}

	h.ReleaseAll()
	h.Apply(&f)
	if got := f.Axis(); got != (core.Vec2{}) {
		t.Errorf("Axis() = %v after release, expected zero", got)
	}
}
