package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dexos/internal/core"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
// It returns false for keys with no binding.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	switch {
	case key.Matches(msg, km.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.Up):
		return core.ActionUp, true
	case key.Matches(msg, km.Down):
		return core.ActionDown, true
	case key.Matches(msg, km.Left):
		return core.ActionLeft, true
	case key.Matches(msg, km.Right):
		return core.ActionRight, true
	case key.Matches(msg, km.Confirm):
		return core.ActionConfirm, true
	case key.Matches(msg, km.Back):
		return core.ActionBack, true
	}
	return core.ActionNone, false
}

// ShortHelp returns the steering bindings for the help bar.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Left, km.Right}
}

// FullHelp returns all bindings.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Left, km.Right},
		{km.Confirm, km.Back, km.Quit},
	}
}
