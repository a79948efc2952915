package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/catrun/internal/storage"
)

func sampleRuns() []storage.Run {
	ended := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []storage.Run{
		{ID: "a", Name: "Luna", Score: 900, Distance: 12.3, EndedAt: ended},
		{ID: "b", Name: "Tom", Score: 500, Distance: 7, EndedAt: ended},
		{ID: "c", Score: 100, Distance: 1.5, EndedAt: ended},
	}
}

func TestLeaderboardRows(t *testing.T) {
	m := NewLeaderboardModel(&fakeLister{runs: sampleRuns()}, "", 10, 80, 24)

	m, _ = m.Update(m.Load()())
	rows := m.table.Rows()
	if len(rows) != 3 {
		t.Fatalf("table has %d rows, expected 3", len(rows))
	}

	expected := []string{"#1", "Luna", "900", "12.3", "Mar 01 12:00"}
	for i, cell := range expected {
		if rows[0][i] != cell {
			t.Errorf("row 0 column %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[2][1] != "anonymous" {
		t.Errorf("unnamed run shows %q, expected anonymous", rows[2][1])
	}
}

func TestLeaderboardHighlight(t *testing.T) {
	m := NewLeaderboardModel(&fakeLister{runs: sampleRuns()}, "", 10, 80, 24)
	m.Highlight("b")

	m, _ = m.Update(m.Load()())
	if got := m.table.Cursor(); got != 1 {
		t.Errorf("cursor = %d, expected the highlighted run at 1", got)
	}
}

func TestLeaderboardStates(t *testing.T) {
	tests := []struct {
		name     string
		lister   RunLister
		load     bool
		expected string
	}{
		{"no store", nil, true, "not being saved"},
		{"loading", &fakeLister{}, false, "Loading"},
		{"error", &fakeLister{err: errors.New("boom")}, true, "Could not load"},
		{"empty", &fakeLister{}, true, "No runs recorded"},
		{"runs", &fakeLister{runs: sampleRuns()}, true, "Luna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLeaderboardModel(tt.lister, "", 10, 80, 24)
			if tt.load {
				m, _ = m.Update(m.Load()())
			}
			if v := m.View(); !strings.Contains(v, tt.expected) {
				t.Errorf("View() missing %q:\n%s", tt.expected, v)
			}
		})
	}
}

func TestLeaderboardGroupTitle(t *testing.T) {
	m := NewLeaderboardModel(nil, "office", 10, 80, 24)
	if !strings.Contains(m.View(), "HIGH SCORES - office") {
		t.Error("title should name the group")
	}
}

func TestLeaderboardKeys(t *testing.T) {
	m := NewLeaderboardModel(nil, "", 10, 80, 24)

	closed, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !closed.Closed() || cmd != nil {
		t.Error("esc should close an embedded leaderboard without quitting")
	}

	m.standalone = true
	closed, cmd = m.Update(runeKey('b'))
	if !closed.Closed() || cmd == nil {
		t.Error("back should quit a standalone leaderboard")
	}

	quit, _ := m.Update(runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}
