package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/catrun/internal/storage"
)

const (
	tableMinWidth = 50
	loadTimeout   = 3 * time.Second
)

// RunLister is the read side of the score store.
type RunLister interface {
	TopRuns(ctx context.Context, groupID string, limit int) ([]storage.Run, error)
}

// runsLoadedMsg carries a finished leaderboard query.
type runsLoadedMsg struct {
	runs []storage.Run
	err  error
}

// loadRunsCmd queries the store off the UI goroutine.
func loadRunsCmd(lister RunLister, groupID string, limit int) tea.Cmd {
	return func() tea.Msg {
		if lister == nil {
			return runsLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		runs, err := lister.TopRuns(ctx, groupID, limit)
		return runsLoadedMsg{runs: runs, err: err}
	}
}

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/tab", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows the best runs of a group.
type LeaderboardModel struct {
	lister     RunLister
	groupID    string
	limit      int
	runs       []storage.Run
	err        error
	loaded     bool
	highlight  string // Run ID to select, e.g. the run just finished
	table      table.Model
	help       help.Model
	keys       LeaderboardKeyMap
	width      int
	height     int
	standalone bool // Quits the program on back
	closed     bool
	quitting   bool
}

// NewLeaderboardModel creates a leaderboard for groupID.
func NewLeaderboardModel(lister RunLister, groupID string, limit, width, height int) LeaderboardModel {
	if limit <= 0 {
		limit = storage.DefaultTopN
	}
	m := LeaderboardModel{
		lister:  lister,
		groupID: groupID,
		limit:   limit,
		help:    help.New(),
		keys:    DefaultLeaderboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// Load returns the command that fills the table.
func (m LeaderboardModel) Load() tea.Cmd {
	return loadRunsCmd(m.lister, m.groupID, m.limit)
}

// Highlight selects the row of the given run once runs are loaded.
func (m *LeaderboardModel) Highlight(runID string) {
	m.highlight = runID
	m.selectHighlight()
}

// createTable creates a new table with appropriate columns.
func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Name", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Dist", Width: 7},
		{Title: "Date", Width: 12},
	}

	// Widen the name column if we have more space
	if extra := m.width - 4 - tableMinWidth; extra > 0 {
		columns[1].Width += min(extra, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows updates the table with current runs.
func (m *LeaderboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.DisplayName(),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f", r.Distance),
			r.EndedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.selectHighlight()
}

func (m *LeaderboardModel) selectHighlight() {
	for i, r := range m.runs {
		if r.ID == m.highlight {
			m.table.SetCursor(i)
			return
		}
	}
}

// Init loads the runs.
func (m LeaderboardModel) Init() tea.Cmd {
	return m.Load()
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (LeaderboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case runsLoadedMsg:
		m.loaded = true
		m.runs, m.err = msg.runs, msg.err
		m.updateTableRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.closed = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	var b strings.Builder

	title := "HIGH SCORES"
	if m.groupID != "" {
		title = fmt.Sprintf("HIGH SCORES - %s", m.groupID)
	}
	b.WriteString(accentStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder.
func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.lister == nil:
		return emptyStyle.Render("Scores are not being saved.")
	case !m.loaded:
		return emptyStyle.Render("Loading...")
	case m.err != nil:
		return emptyStyle.Render("Could not load scores.")
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nGo set a high score!")
	}
	return m.table.View()
}

// Closed reports whether the user left the leaderboard.
func (m LeaderboardModel) Closed() bool {
	return m.closed
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}

// leaderboardProgram adapts LeaderboardModel to tea.Model for standalone use.
type leaderboardProgram struct {
	LeaderboardModel
}

func (p leaderboardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.LeaderboardModel.Update(msg)
	return leaderboardProgram{m}, cmd
}

func (p leaderboardProgram) View() string {
	if p.closed || p.quitting {
		return ""
	}
	return p.LeaderboardModel.View()
}

// RunLeaderboard shows the leaderboard as its own program.
func RunLeaderboard(lister RunLister, groupID string, limit, width, height int) error {
	m := NewLeaderboardModel(lister, groupID, limit, width, height)
	m.standalone = true

	p := tea.NewProgram(leaderboardProgram{m}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
