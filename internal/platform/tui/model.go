package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catrun/internal/audio"
	"github.com/vovakirdan/catrun/internal/config"
	"github.com/vovakirdan/catrun/internal/core"
	"github.com/vovakirdan/catrun/internal/identity"
	"github.com/vovakirdan/catrun/internal/runner"
	"github.com/vovakirdan/catrun/internal/scoring"
)

// footerLines is the number of rows below the play field.
const footerLines = 2

// Options configures a game model. Nil collaborators disable their feature.
type Options struct {
	Config   config.RunnerConfig
	Runtime  core.RuntimeConfig
	Reporter *scoring.Reporter
	Sounds   *audio.SoundManager
	Profile  *identity.Store
	Runs     RunLister
	Logger   *log.Logger
	Clock    runner.Clock
}

// outcomeMsg delivers a scoring outcome to the model.
type outcomeMsg scoring.Outcome

// nameSavedMsg reports the result of a name submission.
type nameSavedMsg struct {
	name string
	err  error
}

// Model is the Bubble Tea model for a runner session.
type Model struct {
	session  *runner.Session
	keys     *KeyState
	mapper   *KeyMapper
	screen   *core.Screen
	runtime  core.RuntimeConfig
	opts     Options
	help     help.Model
	name     textinput.Model
	naming   bool
	outcome  *scoring.Outcome
	status   string
	board    *LeaderboardModel
	quitting bool
}

// NewModel creates a new Bubble Tea model and its session.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	runtime := opts.Runtime
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}

	keys := NewKeyState(opts.Clock, DefaultHoldWindow)
	deps := runner.Deps{Clock: opts.Clock, Input: keys}
	if opts.Reporter != nil {
		deps.Sink = opts.Reporter
	}

	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "your name"
	name.CharLimit = scoring.MaxNameLength
	name.Width = scoring.MaxNameLength + 1

	if opts.Sounds != nil && opts.Profile != nil {
		opts.Sounds.SetMuted(opts.Profile.Profile().Muted)
	}

	h := help.New()
	h.Width = runtime.ScreenW

	return Model{
		session: runner.NewSession(opts.Config, runtime, deps),
		keys:    keys,
		mapper:  NewKeyMapper(),
		screen:  core.NewScreen(runtime.ScreenW, playHeight(runtime.ScreenH)),
		runtime: runtime,
		opts:    opts,
		help:    h,
		name:    name,
	}
}

func playHeight(screenH int) int {
	return max(screenH-footerLines, 2)
}

// Session returns the underlying session.
func (m Model) Session() *runner.Session {
	return m.session
}

// Init starts the tick loop and listens for scoring outcomes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickInterval()), m.waitOutcome())
}

// waitOutcome blocks on the reporter's outcome channel.
func (m Model) waitOutcome() tea.Cmd {
	if m.opts.Reporter == nil {
		return nil
	}
	ch := m.opts.Reporter.Outcomes()
	return func() tea.Msg {
		out, ok := <-ch
		if !ok {
			return nil
		}
		return outcomeMsg(out)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case tea.BlurMsg:
		if m.session.Phase() == runner.PhaseRunning {
			m.session.Pause()
			m.keys.Reset()
			m.status = "Paused: window lost focus"
		}
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(scoring.Outcome(msg))

	case nameSavedMsg:
		return m.handleNameSaved(msg)

	case runsLoadedMsg:
		if m.board != nil {
			b, cmd := m.board.Update(msg)
			m.board = &b
			return m, cmd
		}
		return m, nil
	}

	if m.naming {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		return m.handleBoardKey(msg)
	}
	if m.naming {
		return m.handleNameKey(msg)
	}

	switch m.mapper.MapCommand(msg) {
	case CommandQuit:
		m.quitting = true
		return m, tea.Quit
	case CommandScreenshot:
		m.saveScreenshot()
		return m, nil
	case CommandStart:
		m.session.Start()
		return m, nil
	case CommandPause:
		m.session.TogglePause()
		m.keys.Reset()
		m.status = ""
		return m, nil
	case CommandRestart:
		m.restart()
		return m, nil
	case CommandMute:
		m.toggleMute()
		return m, nil
	case CommandScores:
		return m.openBoard()
	}

	if c, ok := m.mapper.MapControl(msg); ok {
		if m.session.Phase() == runner.PhaseNotStarted {
			if c == core.ControlAction {
				m.session.Start()
			}
			return m, nil
		}
		m.keys.Press(c)
	}
	return m, nil
}

func (m *Model) restart() {
	if !m.session.State().Started() {
		return
	}
	m.session.Restart()
	m.keys.Reset()
	m.outcome = nil
	m.status = ""
}

func (m *Model) toggleMute() {
	if m.opts.Sounds == nil || !m.opts.Sounds.Initialized() {
		m.status = "Sound is unavailable"
		return
	}
	muted := m.opts.Sounds.ToggleMute()
	if muted {
		m.status = "Sound off"
	} else {
		m.status = "Sound on"
	}
	if m.opts.Profile != nil {
		if err := m.opts.Profile.SetMuted(muted); err != nil {
			m.opts.Logger.Warn("cannot save mute preference", "error", err)
		}
	}
}

func (m Model) openBoard() (tea.Model, tea.Cmd) {
	if m.session.Phase() == runner.PhaseRunning {
		m.session.Pause()
		m.keys.Reset()
	}
	board := NewLeaderboardModel(m.opts.Runs, m.runtime.GroupID, m.opts.Config.Storage.TopRankN, m.runtime.ScreenW, m.runtime.ScreenH)
	if m.outcome != nil {
		board.Highlight(string(m.outcome.SessionID))
	}
	m.board = &board
	return m, board.Load()
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, cmd := m.board.Update(msg)
	if b.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if b.Closed() {
		m.board = nil
		return m, nil
	}
	m.board = &b
	return m, cmd
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.naming = false
		m.name.Blur()
		if m.outcome == nil {
			return m, nil
		}
		m.status = "Saving..."
		return m, submitNameCmd(m.opts.Reporter, m.outcome.SessionID, m.name.Value())
	case "esc", "ctrl+c":
		m.naming = false
		m.name.Blur()
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// submitNameCmd stores the name off the UI goroutine.
func submitNameCmd(rep *scoring.Reporter, id scoring.SessionID, name string) tea.Cmd {
	return func() tea.Msg {
		clean := scoring.CleanName(name)
		if rep == nil {
			return nameSavedMsg{name: clean, err: scoring.ErrNoSession}
		}
		err := rep.SubmitName(context.Background(), id, clean)
		return nameSavedMsg{name: clean, err: err}
	}
}

func (m Model) handleOutcome(out scoring.Outcome) (tea.Model, tea.Cmd) {
	m.outcome = &out
	next := m.waitOutcome()

	if !out.TopRank || out.SessionID == "" || m.session.Phase() != runner.PhaseGameOver {
		return m, next
	}

	m.naming = true
	m.keys.Reset()
	if m.opts.Profile != nil {
		m.name.SetValue(m.opts.Profile.Profile().LastName)
	} else {
		m.name.SetValue("")
	}
	m.name.CursorEnd()
	focus := m.name.Focus()
	return m, tea.Batch(focus, next)
}

func (m Model) handleNameSaved(msg nameSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "Could not save your name"
		return m, nil
	}
	m.status = fmt.Sprintf("Saved as %s", msg.name)
	if m.opts.Profile != nil {
		if err := m.opts.Profile.SetLastName(msg.name); err != nil {
			m.opts.Logger.Warn("cannot save profile name", "error", err)
		}
	}
	return m, nil
}

// handleResize processes window resize events. The simulation runs in world
// units, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width

	if m.board != nil {
		b, cmd := m.board.Update(msg)
		m.board = &b
		return m, cmd
	}
	return m, nil
}

// handleTick advances the simulation and plays its sounds.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.session.Tick()

	events := m.session.DrainEvents()
	for _, ev := range events {
		if ev == runner.EventGameOver {
			m.keys.Reset()
			m.status = ""
		}
	}
	if m.opts.Sounds != nil {
		m.opts.Sounds.PlayEvents(events)
	}

	return m, tickCmd(m.runtime.TickInterval())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "Screenshot failed"
		return
	}
	dir := filepath.Join(home, ".catrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot create screenshot directory", "error", err)
		m.status = "Screenshot failed"
		return
	}

	filename := fmt.Sprintf("catrun_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot write screenshot", "path", path, "error", err)
		m.status = "Screenshot failed"
		return
	}
	m.status = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine() + "\n" + footerStyle.Render(m.help.View(m.mapper.Keys()))
}

// statusLine is the first footer row.
func (m Model) statusLine() string {
	if m.naming {
		return accentStyle.Render("New high score! ") + m.name.View()
	}
	if m.status != "" {
		return warningStyle.Render(m.status)
	}
	if m.session.Phase() == runner.PhaseGameOver && m.outcome != nil {
		return positiveStyle.Render(describeOutcome(*m.outcome))
	}
	if m.session.Phase() == runner.PhaseNotStarted {
		return footerStyle.Render(m.settingsLine())
	}
	return ""
}

// settingsLine reports sound and profile status on the start screen.
func (m Model) settingsLine() string {
	sound := "unavailable"
	if sm := m.opts.Sounds; sm != nil && sm.Initialized() {
		sound = "on"
		if sm.Muted() {
			sound = "off"
		}
	}
	profile := "not saved"
	if p := m.opts.Profile; p != nil && p.Persistent() {
		profile = "saved"
	}
	return fmt.Sprintf("Sound: %s  Profile: %s", sound, profile)
}

// describeOutcome summarizes a run's standing.
func describeOutcome(out scoring.Outcome) string {
	text := fmt.Sprintf("Score %d", out.Result.Score)
	if out.HasPercentile {
		text += fmt.Sprintf(" - top %.1f%% of runs", out.Percentile)
	}
	if out.SessionID == "" {
		text += " (not saved)"
	}
	return text
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Pause when the terminal loses focus
	)

	_, err := p.Run()
	return err
}
