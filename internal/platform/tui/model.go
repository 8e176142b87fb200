package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-raycaster/internal/core"
	"github.com/vovakirdan/tui-raycaster/internal/session"
)

// pauseDim is how far the frame is blended toward black while paused.
const pauseDim = 0.55

// Model is the Bubble Tea model for the interactive 3D view.
type Model struct {
	session    *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       ViewerKeyMap
	help       help.Model
	theme      Theme
	logger     *log.Logger
	inputFrame core.InputFrame
	status     string
	quitting   bool
}

// NewModel creates a new Bubble Tea model driving the given session.
func NewModel(s *session.Session, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	w, h := cfg.PixelSize()
	s.Resize(w, h)

	hm := help.New()
	hm.ShowAll = false
	hm.Width = cfg.ScreenW

	return Model{
		session:    s,
		screen:     core.NewScreen(w, h),
		config:     cfg,
		keys:       DefaultViewerKeyMap(),
		help:       hm,
		theme:      DefaultTheme(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
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
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
// The player pose is kept; only the framebuffer and projection change.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	w, h := m.config.PixelSize()
	m.screen.Resize(w, h)
	m.session.Resize(w, h)
	m.help.Width = msg.Width
	m.logger.Debug("resized", "cols", msg.Width, "rows", msg.Height, "pixels", fmt.Sprintf("%dx%d", w, h))
	return m, nil
}

// handleTick advances the session by one frame of input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.session.Step(m.inputFrame)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as text to ~/.raycaster/screenshots.
// Returns a status line describing the outcome.
func (m *Model) saveScreenshot() string {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}
	dir := filepath.Join(home, ".raycaster", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	name := strings.TrimSuffix(m.session.Map.Name, filepath.Ext(m.session.Map.Name))
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", name, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + filepath.Base(path)
}

// View renders the current frame and the status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	if m.session.Paused() {
		Dim(m.screen, pauseDim)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) statusLine() string {
	p := m.session.Player
	row, col := m.session.Map.Grid.TileOf(p.Pos)
	deg := int(math.Round(p.Angle * 180 / math.Pi))

	parts := []string{
		m.theme.HUDValue.Render(m.session.Map.Name),
		m.theme.HUD.Render(fmt.Sprintf("tile %d,%d", row, col)),
		m.theme.HUD.Render(fmt.Sprintf("%3d°", deg)),
	}
	if m.session.Paused() {
		parts = append(parts, m.theme.HUDAlert.Render("PAUSED"))
	}
	if m.status != "" {
		parts = append(parts, m.theme.HUDAlert.Render(m.status))
	}
	parts = append(parts, m.theme.Help.Render(m.help.View(m.keys)))
	return lipgloss.NewStyle().MaxWidth(m.config.ScreenW).Render(strings.Join(parts, "  "))
}

// Run starts the Bubble Tea program for the given session.
func Run(s *session.Session, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(s, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
