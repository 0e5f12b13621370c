package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pika-runner/internal/assets"
	"github.com/vovakirdan/pika-runner/internal/config"
	"github.com/vovakirdan/pika-runner/internal/core"
	"github.com/vovakirdan/pika-runner/internal/session"
)

// Options wires a Model to its session and environment.
type Options struct {
	Session *session.Session
	Library *assets.Library // sprite source; nil draws placeholders
	Config  config.RunnerConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// Model is the Bubble Tea model for the runner.
type Model struct {
	session  *session.Session
	library  *assets.Library
	world    config.WorldConfig
	config   core.RuntimeConfig
	logger   *log.Logger
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	theme    Theme
	input    core.InputFrame
	paused   bool
	quitting bool
}

// NewModel creates a new Bubble Tea model for the runner.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return Model{
		session: opts.Session,
		library: opts.Library,
		world:   opts.Config.World,
		config:  opts.Runtime,
		logger:  logger,
		screen:  core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   DarkTheme(),
		input:   core.NewInputFrame(),
	}
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.session.Start(time.Now())
	return tickCmd(m.config.FrameInterval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPrimary, core.ActionReset:
		// Applied on the next tick
		m.input.Set(action)
	case core.ActionPause:
		m.paused = !m.paused
	case core.ActionTheme:
		m.toggleTheme()
	case core.ActionMute:
		muted := m.session.ToggleMute()
		m.logger.Debug("sound toggled", "muted", muted)
	}

	return m, nil
}

func (m *Model) toggleTheme() {
	if m.theme.Name == "dark" {
		m.theme = LightTheme()
	} else {
		m.theme = DarkTheme()
	}
}

// handleResize processes window resize events.
// The help bar takes the last terminal row.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick drives one frame. A paused model keeps ticking without
// advancing the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.applyInput(now)
	if !m.paused {
		m.session.Tick(now)
	}
	return m, tickCmd(m.config.FrameInterval())
}

// applyInput hands the actions latched since the last tick to the session.
// A reset also clears the pause; a jump while paused is dropped.
func (m *Model) applyInput(now time.Time) {
	if m.input.Has(core.ActionReset) {
		m.paused = false
		m.session.RequestReset(now)
	}
	if m.input.Has(core.ActionPrimary) && !m.paused {
		m.session.Primary(now)
	}
	m.input.Clear()
}

// frame collects the current view state.
func (m Model) frame() Frame {
	f := Frame{
		World:    m.world,
		Snapshot: m.session.Snapshot(),
		Status:   m.session.Status(),
		Paused:   m.paused,
	}
	if m.library != nil {
		f.Sprites, f.HasSprites = m.library.Sprites()
	}
	return f
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.frame())

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".pikarun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("pikarun_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.frame())
	return RenderScreen(m.screen, m.theme) + "\n" + m.theme.help.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the runner.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
