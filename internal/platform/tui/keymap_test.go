package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyOneShots(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected []core.Action
		quit     bool
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionStart, core.ActionAcknowledge}, false},
		{"pause", runeKey('p'), []core.Action{core.ActionPauseToggle}, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionPauseToggle}, false},
		{"mode", runeKey('m'), []core.Action{core.ActionToggleMode}, false},
		{"quit", runeKey('q'), []core.Action{core.ActionQuit}, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper(DefaultKeyMap(), 3, 1)
			frame := core.NewInputFrame()
			if quit := km.MapKey(tt.msg, &frame); quit != tt.quit {
				t.Errorf("MapKey() = %v, expected %v", quit, tt.quit)
			}
			for _, a := range tt.expected {
				if !frame.Has(a) {
					t.Errorf("frame missing %v", a)
				}
			}
		})
	}
}

func TestThrustHoldReleasesEngine(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), 3, 1)
	frame := core.NewInputFrame()
	km.MapKey(tea.KeyMsg{Type: tea.KeyUp}, &frame)
	if !frame.Empty() {
		t.Error("movement keys should not land in the frame before Tick()")
	}

	for tick := 1; tick <= 3; tick++ {
		f := core.NewInputFrame()
		km.Tick(&f)
		if !f.Has(core.ActionThrustOn) {
			t.Errorf("tick %d: expected ThrustOn", tick)
		}
		if off := f.Has(core.ActionThrustOff); off != (tick == 3) {
			t.Errorf("tick %d: ThrustOff = %v, expected %v", tick, off, tick == 3)
		}
	}

	if km.Held(core.ActionThrustOn) {
		t.Error("thrust should no longer be held")
	}
	f := core.NewInputFrame()
	km.Tick(&f)
	if !f.Empty() {
		t.Errorf("Tick() after release = %v, expected empty frame", f.Actions)
	}
}

func TestRepeatExtendsHold(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), 2, 4)
	frame := core.NewInputFrame()
	km.MapKey(runeKey(' '), &frame)
	km.MapKey(runeKey(' '), &frame)

	held := 0
	for range 10 {
		f := core.NewInputFrame()
		km.Tick(&f)
		if f.Has(core.ActionFire) {
			held++
		}
	}
	if held != 4 {
		t.Errorf("fire held for %d ticks, expected 4", held)
	}
}

func TestDirectionalMapping(t *testing.T) {
	tests := []struct {
		msg         tea.KeyMsg
		classic     core.Action
		directional core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrustOn, core.ActionMoveUp},
		{runeKey('a'), core.ActionRotateLeft, core.ActionMoveLeft},
		{runeKey('d'), core.ActionRotateRight, core.ActionMoveRight},
		{runeKey('s'), core.ActionNone, core.ActionMoveDown},
		{runeKey('z'), core.ActionRotateLeft, core.ActionRotateLeft},
		{runeKey('x'), core.ActionRotateRight, core.ActionRotateRight},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			for _, directional := range []bool{false, true} {
				km := NewKeyMapper(DefaultKeyMap(), 3, 1)
				km.SetDirectional(directional)
				frame := core.NewInputFrame()
				km.MapKey(tt.msg, &frame)

				expected := tt.classic
				if directional {
					expected = tt.directional
				}
				if expected == core.ActionNone {
					if len(km.held) != 0 {
						t.Errorf("directional=%v: held = %v, expected nothing", directional, km.held)
					}
					continue
				}
				if !km.Held(expected) {
					t.Errorf("directional=%v: Held(%v) = false, expected true", directional, expected)
				}
			}
		})
	}
}

func TestSetDirectionalDropsHolds(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap(), 3, 1)
	frame := core.NewInputFrame()
	km.MapKey(tea.KeyMsg{Type: tea.KeyUp}, &frame)

	km.SetDirectional(false)
	if !km.Held(core.ActionThrustOn) {
		t.Error("SetDirectional() without a change should keep holds")
	}
	km.SetDirectional(true)
	if km.Held(core.ActionThrustOn) {
		t.Error("SetDirectional() should drop holds when steering changes")
	}
}
