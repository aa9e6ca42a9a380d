package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// WatchKeyMap defines the key bindings of the replay viewer.
type WatchKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// WatchModel plays a saved replay back at its recorded speed.
type WatchModel struct {
	id        int64
	player    *replay.Player
	screen    *core.Screen
	interval  time.Duration
	speed     int // Multiplier, 1..8
	paused    bool
	keys      WatchKeyMap
	help      help.Model
	quitting  bool
	goingBack bool
}

// NewWatchModel prepares a replay for viewing.
func NewWatchModel(r storage.Replay, width, height int) (WatchModel, error) {
	p, err := replay.NewPlayer(r)
	if err != nil {
		return WatchModel{}, err
	}

	h := help.New()
	h.Width = width

	return WatchModel{
		id:       r.ID,
		player:   p,
		screen:   core.NewScreen(core.Max(width, 0), core.Max(height-2, 0)),
		interval: p.TickInterval(),
		speed:    1,
		keys:     DefaultWatchKeyMap(),
		help:     h,
	}, nil
}

// Init starts playback.
func (m WatchModel) Init() tea.Cmd {
	return replayTickCmd(m.tickInterval())
}

func (m WatchModel) tickInterval() time.Duration {
	return m.interval / time.Duration(m.speed)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = core.Min(m.speed*2, 8)
		case key.Matches(msg, m.keys.Slower):
			m.speed = core.Max(m.speed/2, 1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-2, 0))
		m.help.Width = msg.Width
		return m, nil

	case replayTickMsg:
		if m.quitting || m.goingBack {
			return m, nil
		}
		if !m.paused {
			m.player.Step()
		}
		return m, replayTickCmd(m.tickInterval())
	}
	return m, nil
}

// View renders the board, a status line and the key help.
func (m WatchModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	snake.DrawBoard(m.screen, m.player.Board())

	status := fmt.Sprintf("Replay #%d  tick %d/%d  x%d", m.id, m.player.Board().Ticks(), m.player.Total(), m.speed)
	switch {
	case m.player.Done():
		status += "  (finished)"
	case m.paused:
		status += "  (paused)"
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + status + "\n" + dim.Render(m.help.View(m.keys))
}

// Player returns the replay player.
func (m WatchModel) Player() *replay.Player {
	return m.player
}

// IsGoingBack returns true if user wants to return to the replay list.
func (m WatchModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}
