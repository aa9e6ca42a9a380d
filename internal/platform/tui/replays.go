package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel lists saved replays.
type ReplaysModel struct {
	store     *storage.Store
	replays   []storage.Replay
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	width     int
	height    int
	selected  *int64
	quitting  bool
	goingBack bool
}

// NewReplaysModel creates a replay browser and loads the newest replays.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	h := help.New()
	h.Width = width

	m := ReplaysModel{
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Ticks", Width: 8},
		{Title: "Recorded", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 1)), // Leave room for header, help, and margins
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

// loadReplays reloads the list from the store.
func (m *ReplaysModel) loadReplays() {
	m.replays = nil
	m.loadErr = nil
	if m.store != nil {
		m.replays, m.loadErr = m.store.RecentReplays(maxReplays)
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.GameID,
			fmt.Sprintf("%d", r.FinalScore),
			fmt.Sprintf("%d", r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				id := r.ID
				m.selected = &id
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.loadReplays()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadReplays()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the replay under the cursor.
func (m ReplaysModel) current() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an explanatory message.
func (m ReplaysModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Replay database unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load replays:\n" + m.loadErr.Error())
	case len(m.replays) == 0:
		return emptyStyle.Render("No replays recorded yet.\nPlay a game to record one!")
	}
	return m.table.View()
}

// Selected returns the ID of the replay chosen for watching, or nil.
func (m ReplaysModel) Selected() *int64 {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}
