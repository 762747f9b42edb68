package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
)

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Fire        key.Binding
	Pause       key.Binding
	Start       key.Binding
	Mode        key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Right, k.Fire, k.Pause, k.Start, k.Mode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.RotateLeft, k.RotateRight, k.Fire},
		{k.Pause, k.Start, k.Mode, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "thrust"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("z", ","),
			key.WithHelp("z", "aim left"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("x", "."),
			key.WithHelp("x", "aim right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m", "tab"),
			key.WithHelp("m", "mode"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Terminals report presses and auto-repeats but never releases, so movement
// keys are held for a short window that each repeat renews.
type KeyMapper struct {
	keys        KeyMap
	directional bool
	held        map[core.Action]int
	firstHold   int // ticks a fresh press is held, covering the repeat delay
	repeatHold  int // ticks an auto-repeat extends the hold
}

// NewKeyMapper creates a key mapper. Hold windows are given in ticks.
func NewKeyMapper(keys KeyMap, firstHold, repeatHold int) *KeyMapper {
	return &KeyMapper{
		keys:       keys,
		held:       make(map[core.Action]int),
		firstHold:  max(1, firstHold),
		repeatHold: max(1, repeatHold),
	}
}

// SetDirectional switches movement keys between rotate/thrust and 8-way movement.
func (km *KeyMapper) SetDirectional(directional bool) {
	if km.directional == directional {
		return
	}
	km.directional = directional
	clear(km.held)
}

// MapKey records a key press into frame. One-shot actions go straight into
// the frame, movement actions start or renew a hold. Returns true for quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		frame.Set(core.ActionQuit)
		return true
	case key.Matches(msg, k.Start):
		frame.Set(core.ActionStart)
		frame.Set(core.ActionAcknowledge)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPauseToggle)
	case key.Matches(msg, k.Mode):
		frame.Set(core.ActionToggleMode)
	case key.Matches(msg, k.Fire):
		km.hold(core.ActionFire)
	case key.Matches(msg, k.RotateLeft):
		km.hold(core.ActionRotateLeft)
	case key.Matches(msg, k.RotateRight):
		km.hold(core.ActionRotateRight)
	case key.Matches(msg, k.Up):
		if km.directional {
			km.hold(core.ActionMoveUp)
		} else {
			km.hold(core.ActionThrustOn)
		}
	case key.Matches(msg, k.Down):
		if km.directional {
			km.hold(core.ActionMoveDown)
		}
	case key.Matches(msg, k.Left):
		if km.directional {
			km.hold(core.ActionMoveLeft)
		} else {
			km.hold(core.ActionRotateLeft)
		}
	case key.Matches(msg, k.Right):
		if km.directional {
			km.hold(core.ActionMoveRight)
		} else {
			km.hold(core.ActionRotateRight)
		}
	}
	return false
}

func (km *KeyMapper) hold(a core.Action) {
	if _, ok := km.held[a]; ok {
		km.held[a] = max(km.held[a], km.repeatHold)
		return
	}
	km.held[a] = km.firstHold
}

// Tick adds every held action to frame and ages the holds. A thrust hold
// that runs out releases the engine latch.
func (km *KeyMapper) Tick(frame *core.InputFrame) {
	for a, left := range km.held {
		frame.Set(a)
		left--
		if left > 0 {
			km.held[a] = left
			continue
		}
		delete(km.held, a)
		if a == core.ActionThrustOn {
			frame.Set(core.ActionThrustOff)
		}
	}
}

// Held reports whether an action is currently held.
func (km *KeyMapper) Held(a core.Action) bool {
	_, ok := km.held[a]
	return ok
}
