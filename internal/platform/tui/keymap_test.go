package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catrun/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestMapControl(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Control
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ControlUp},
		{"w", runeKey('w'), core.ControlUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ControlDown},
		{"s", runeKey('s'), core.ControlDown},
		{"space", spaceKey, core.ControlAction},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.MapControl(tt.msg)
			if !ok {
				t.Fatalf("MapControl(%q) not mapped", tt.msg.String())
			}
			if got != tt.expected {
				t.Errorf("MapControl(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}

	if _, ok := km.MapControl(runeKey('x')); ok {
		t.Error("x should not map to a control")
	}
}

func TestHorizontalKeysUnbound(t *testing.T) {
	km := NewKeyMapper()
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyRight}, runeKey('a'), runeKey('d')} {
		if c, ok := km.MapControl(msg); ok {
			t.Errorf("MapControl(%q) = %v, drift is automatic and needs no key", msg.String(), c)
		}
		if cmd := km.MapCommand(msg); cmd != CommandNone {
			t.Errorf("MapCommand(%q) = %v, expected none", msg.String(), cmd)
		}
	}
}

func TestMapCommand(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Command
	}{
		{"q", runeKey('q'), CommandQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, CommandQuit},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, CommandScreenshot},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, CommandStart},
		{"p", runeKey('p'), CommandPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, CommandPause},
		{"r", runeKey('r'), CommandRestart},
		{"m", runeKey('m'), CommandMute},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, CommandScores},
		{"space is a control", spaceKey, CommandNone},
		{"s is a control", runeKey('s'), CommandNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapCommand(tt.msg); got != tt.expected {
				t.Errorf("MapCommand(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
			}
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	keys := NewKeyMapper().Keys()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 10 {
		t.Errorf("FullHelp() lists %d bindings, expected 10", total)
	}
}
