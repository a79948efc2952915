package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catrun/internal/core"
)

// GameKeyMap defines the key bindings used while playing.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Action     key.Binding
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Mute       key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Down, k.Pause, k.Restart, k.Mute, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Action, k.Up, k.Down},
		{k.Start, k.Pause, k.Restart},
		{k.Mute, k.Scores, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "jump"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "slide"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command is a frontend action that is not a simulation control.
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandPause
	CommandRestart
	CommandMute
	CommandScores
	CommandScreenshot
	CommandQuit
)

// KeyMapper translates Bubble Tea key messages to controls and commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, e.g. for a help view.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapCommand translates a key to a frontend command.
func (km *KeyMapper) MapCommand(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return CommandQuit
	case key.Matches(msg, km.keys.Screenshot):
		return CommandScreenshot
	case key.Matches(msg, km.keys.Start):
		return CommandStart
	case key.Matches(msg, km.keys.Pause):
		return CommandPause
	case key.Matches(msg, km.keys.Restart):
		return CommandRestart
	case key.Matches(msg, km.keys.Mute):
		return CommandMute
	case key.Matches(msg, km.keys.Scores):
		return CommandScores
	}
	return CommandNone
}

// MapControl translates a key to a simulation control.
func (km *KeyMapper) MapControl(msg tea.KeyMsg) (core.Control, bool) {
	switch {
	case key.Matches(msg, km.keys.Up):
		return core.ControlUp, true
	case key.Matches(msg, km.keys.Down):
		return core.ControlDown, true
	case key.Matches(msg, km.keys.Action):
		return core.ControlAction, true
	}
	return 0, false
}
