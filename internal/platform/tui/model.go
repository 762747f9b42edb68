package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/asteroids-destroyer/internal/core"
	"github.com/vovakirdan/asteroids-destroyer/internal/games/asteroids"
	"github.com/vovakirdan/asteroids-destroyer/internal/storage"
)

// Hold windows for keys that terminals only report as presses.
const (
	firstHoldSeconds  = 0.35
	repeatHoldSeconds = 0.12
)

// Model is the Bubble Tea model driving one asteroids machine.
type Model struct {
	machine  *asteroids.Machine
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	player   string
	keys     KeyMap
	keyMap   *KeyMapper
	help     help.Model
	frame    core.InputFrame
	state    core.GameState
	quitting bool
	lastSave string // run id of the last saved run
}

// NewModel creates a Bubble Tea model for the machine. The store and logger
// may be nil.
func NewModel(machine *asteroids.Machine, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	return Model{
		machine: machine,
		screen:  core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		store:   store,
		logger:  logger,
		config:  cfg,
		player:  player,
		keys:    keys,
		keyMap:  NewKeyMapper(keys, cfg.Ticks(firstHoldSeconds), cfg.Ticks(repeatHoldSeconds)),
		help:    h,
		frame:   core.NewInputFrame(),
		state:   machine.State(),
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
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
			return m, nil
		}
		m.keyMap.MapKey(msg, &m.frame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick feeds the collected input to the machine once per tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.keyMap.Tick(&m.frame)
	res := m.machine.Step(m.frame)
	m.state = res.State
	m.frame.Clear()
	m.keyMap.SetDirectional(m.machine.Directional())

	for _, e := range res.Events {
		if e.Kind == asteroids.EventGameOver {
			m.saveRun()
		}
	}

	if m.state.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Storage failures are logged and the
// session carries on.
func (m *Model) saveRun() {
	s := m.machine.Session()
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(storage.RunRecord{
		Mode:      s.Mode,
		Player:    m.player,
		Score:     s.Score,
		Outcome:   s.Outcome.String(),
		Ticks:     m.machine.Tick(),
		Destroyed: s.Destroyed,
		Seed:      m.machine.RunSeed(),
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastSave = id
	m.logger.Debug("run saved", "run", id, "score", s.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.machine.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".asteroids", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.machine.Mode(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the machine followed by the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.machine.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last status summary.
func (m Model) State() core.GameState {
	return m.state
}

// LastSavedRun returns the id of the most recently stored run, if any.
func (m Model) LastSavedRun() string {
	return m.lastSave
}

// Run starts the Bubble Tea program for a local game.
func Run(machine *asteroids.Machine, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(machine, store, cfg, "", logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
