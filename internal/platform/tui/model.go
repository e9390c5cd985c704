package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

// helpRows is the number of terminal rows below the game screen.
const helpRows = 1

// Model is the Bubble Tea model hosting one quest loop.
type Model struct {
	loop   *quest.Loop
	screen *core.Screen
	raster *Rasterizer
	keys   *KeyMapper
	help   help.Model
	held   *HeldKeys
	ledger *LedgerView
	logger *log.Logger
	config core.RuntimeConfig

	width  int
	height int

	input    core.InputFrame
	start    time.Time // Host clock origin for frame timestamps
	frame    quest.Frame
	running  bool // Frames are being requested
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given loop.
// store and logger may be nil.
func NewModel(loop *quest.Loop, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, width, height int) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	view := loop.Config().Viewport

	input := core.NewInputFrame()
	input.Pointer = view.Center()

	h := help.New()
	h.Width = width

	m := Model{
		loop:    loop,
		screen:  core.NewScreen(width, max(height-helpRows, 1)),
		raster:  NewRasterizer(view.Width, view.Height),
		keys:    NewKeyMapper(),
		help:    h,
		held:    NewHeldKeys(),
		ledger:  NewLedgerView(store, height),
		logger:  logger,
		config:  cfg,
		width:   width,
		height:  height,
		input:   input,
		running: true,
	}
	m.frame = loop.Compose()
	m.raster.Draw(m.screen, m.frame)
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionStart && !m.running:
		return m.restart()

	case action.IsMovement():
		m.held.Press(action, now)

	case action != core.ActionNone:
		m.input.Set(action)
	}
	return m, nil
}

// handleMouse aims with the pointer and attacks on left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.input.Pointer = m.raster.ToViewport(m.screen, msg.X, msg.Y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.input.Set(core.ActionPrimary)
	}
	return m, nil
}

// handleResize processes window resize events.
// The simulation works in viewport units, so only the raster changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	m.ledger.Resize(msg.Height)
	m.raster.Draw(m.screen, m.frame)
	return m, nil
}

// handleTick runs one simulation frame.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if !m.running {
		return m, nil
	}
	if m.start.IsZero() {
		m.start = t
	}
	now := float64(t.Sub(m.start).Microseconds()) / 1000

	m.held.Expire(t)
	m.held.Apply(&m.input)
	result := m.loop.Frame(now, m.input)

	// Clear input for next frame
	m.input.Clear()

	m.frame = result.Frame
	for _, ev := range result.Events {
		if over, ok := ev.(quest.GameOverEvent); ok {
			m.recordRun(over)
		}
	}
	m.raster.Draw(m.screen, m.frame)

	if !result.Continue {
		m.running = false
		m.held.ReleaseAll()
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// recordRun adds a finished run to the session ledger. Best-effort: the
// game continues regardless.
func (m *Model) recordRun(over quest.GameOverEvent) {
	played := time.Duration(over.Elapsed * float64(time.Millisecond))
	if err := m.ledger.Record(over.Kills, over.BossSpawned, played); err != nil {
		m.logger.Warn("could not record run", "error", err)
	}
}

// restart discards the finished run and resumes frames on the title menu.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.loop.Restart()
	m.held.ReleaseAll()
	m.input.Clear()
	m.running = true
	m.start = time.Time{}
	m.frame = m.loop.Compose()
	m.raster.Draw(m.screen, m.frame)
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".quest", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("quest_%s.txt", timestamp))

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
	if m.frame.Scene == quest.SceneDefeated {
		return m.defeatView()
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// defeatView shows the run summary and the session ledger.
func (m Model) defeatView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Render("Y O U   D I E D")

	summary := fmt.Sprintf("Kills: %d", m.frame.HUD.Kills)
	if m.loop.State().BossSpawned {
		summary += " · the boss was summoned"
	}

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("enter: try again · q: quit")

	body := lipgloss.JoinVertical(lipgloss.Center,
		title, "", summary, "", m.ledger.View(), "", hint,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Run starts the Bubble Tea program for loop.
func Run(loop *quest.Loop, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, width, height int) error {
	model := NewModel(loop, store, logger, cfg, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aim follows the mouse without a button held
	)

	_, err := p.Run()
	return err
}
