package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroids-destroyer/internal/registry"
	"github.com/vovakirdan/asteroids-destroyer/internal/storage"
)

const (
	sidebarMinWidth = 80
	sidebarWidth    = 20
	historyLimit    = 100
)

var (
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmpty  = boardDim.Italic(true).Padding(2, 4)
	boardActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// historyKeys switch modes and leave the screen. Row scrolling is left to the
// table's own key map; scroll is listed only for help.
type historyKeys struct {
	scroll, next, prev, back, quit key.Binding
}

func (k historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.scroll, k.next, k.prev, k.back, k.quit}
}

func (k historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newHistoryKeys() historyKeys {
	return historyKeys{
		scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses the stored run history one mode at a time.
type ScoreboardModel struct {
	store  *storage.Store
	modes  []registry.ModeInfo
	cursor int

	runs    []storage.RunRecord
	stats   map[string]*storage.ModeStats
	loadErr error

	board  table.Model
	help   help.Model
	keys   historyKeys
	width  int
	height int

	done, back bool
}

// NewScoreboardModel opens the history on the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store: store,
		modes: registry.List(),
		help:  help.New(),
		keys:  newHistoryKeys(),
	}
	if store != nil {
		// a missing summary only blanks the header line
		m.stats, _ = store.Stats()
	}
	m.resize(width, height)
	m.selectMode(0)
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= sidebarMinWidth }

// resize rebuilds the table so the player column takes any spare width.
func (m *ScoreboardModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	avail := width - 4
	if m.wide() {
		avail -= sidebarWidth + 3
	}
	player := 10 + min(max(avail-56, 0), 14)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true)
	styles.Selected = styles.Selected.Bold(false).
		Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	m.board = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 8},
			{Title: "Outcome", Width: 10},
			{Title: "Player", Width: player},
			{Title: "Played", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-8)),
		table.WithStyles(styles),
	)
	m.fillBoard()
}

// selectMode moves the cursor by delta, wrapping, and reloads its runs.
func (m *ScoreboardModel) selectMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.modes)) % len(m.modes)
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.TopScores(m.Mode(), historyLimit)
	}
	m.fillBoard()
}

func (m *ScoreboardModel) fillBoard() {
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(r.Score),
			r.Outcome,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.board.SetRows(rows)
	m.board.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			m.done, m.back = true, true
			return m, tea.Quit
		case key.Matches(msg, m.keys.next):
			m.selectMode(1)
			return m, nil
		case key.Matches(msg, m.keys.prev):
			m.selectMode(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

// Mode returns the name of the mode on display.
func (m ScoreboardModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.cursor].Name
}

func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.modes) > 0 {
		title += " - " + m.modes[m.cursor].Title
	}

	content := m.board.View()
	switch {
	case m.loadErr != nil:
		content = boardEmpty.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		content = boardEmpty.Render("No runs recorded yet.\nClear a few rocks to set a high score!")
	}

	body := lipgloss.JoinVertical(lipgloss.Center, m.modeTabs(), "", boardBox.Render(content))
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, boardBox.Width(sidebarWidth).Render(m.modeList()), "  ", boardBox.Render(content))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(boardTitle.Render(title), m.width),
		centerText(boardDim.Render(m.summary()), m.width),
		"",
		body,
		"",
		boardDim.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) summary() string {
	st, ok := m.stats[m.Mode()]
	if !ok {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  best %d  avg %.0f  %d cleared", st.Runs, st.HighScore, st.AvgScore, st.Victories)
}

func (m ScoreboardModel) modeList() string {
	var b strings.Builder
	b.WriteString("Modes\n" + strings.Repeat("-", sidebarWidth-4))
	for i, info := range m.modes {
		name := truncate(info.Title, sidebarWidth-6)
		if i == m.cursor {
			b.WriteString("\n" + boardTitle.Render("> "+name))
			continue
		}
		b.WriteString("\n  " + name)
	}
	return b.String()
}

// modeTabs falls back to "< title >" when the tabs do not fit.
func (m ScoreboardModel) modeTabs() string {
	if len(m.modes) == 0 {
		return ""
	}
	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		style := boardDim.Padding(0, 1)
		if i == m.cursor {
			style = boardActive
		}
		tabs[i] = style.Render(truncate(info.Title, 10))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		return "< " + m.modes[m.cursor].Title + " >"
	}
	return line
}

// RunScoreboard shows the history full screen. goBack is false when the
// user quit instead of stepping back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.back, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}

func centerText(text string, width int) string {
	if w := lipgloss.Width(text); w < width {
		return strings.Repeat(" ", (width-w)/2) + text
	}
	return text
}
