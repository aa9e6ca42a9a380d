package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type phase int

const (
	phaseMenu phase = iota
	phasePlaying
	phaseReplays
	phaseWatching
)

// SessionModel manages the full session flow: menu -> game or replays ->
// menu. Local play and SSH sessions both run it.
type SessionModel struct {
	opts     Options
	config   core.RuntimeConfig
	phase    phase
	menu     MenuModel
	game     *GameModel
	replays  *ReplaysModel
	watch    *WatchModel
	records  *sessionRecords
	status   string // Last non-fatal problem, shown on the menu
	quitting bool
}

// sessionRecords is shared by every copy of a SessionModel, so the game
// running when the program stops can still be saved by Close.
type sessionRecords struct {
	game  *GameModel
	saved []int64
}

// collect moves the running game's saved replay IDs into the session.
func (r *sessionRecords) collect() {
	if r.game == nil {
		return
	}
	r.saved = append(r.saved, r.game.SavedReplays()...)
	r.game = nil
}

// NewSessionModel creates a session. If startGame is non-empty the session
// skips the menu and starts that variant.
func NewSessionModel(opts Options, cfg core.RuntimeConfig, startGame string) (SessionModel, error) {
	m := SessionModel{
		opts:    opts,
		config:  cfg,
		menu:    NewMenuModel(cfg),
		records: &sessionRecords{},
	}
	if startGame != "" {
		if err := m.startGame(startGame); err != nil {
			return SessionModel{}, err
		}
	}
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	switch m.phase {
	case phasePlaying:
		return m.game.Init()
	case phaseWatching:
		return m.watch.Init()
	}
	return m.menu.Init()
}

// startGame switches to playing gameID.
func (m *SessionModel) startGame(gameID string) error {
	gm, err := NewGameModel(gameID, m.opts, m.config)
	if err != nil {
		return err
	}
	m.game = &gm
	m.records.game = &gm
	m.phase = phasePlaying
	return nil
}

// toMenu returns to a fresh menu.
func (m *SessionModel) toMenu() {
	m.records.collect()
	m.menu = NewMenuModel(m.config)
	m.game = nil
	m.replays = nil
	m.watch = nil
	m.phase = phaseMenu
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.phase {
	case phasePlaying:
		return m.updateGame(msg)
	case phaseReplays:
		return m.updateReplays(msg)
	case phaseWatching:
		return m.updateWatch(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		m.config = m.menu.Config()
		if err := m.startGame(m.menu.Selected().GameID); err != nil {
			m.status = err.Error()
			m.toMenu()
			return m, nil
		}
		m.status = ""
		return m, m.game.Init()

	case m.menu.WantsReplays():
		rm := NewReplaysModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.replays = &rm
		m.phase = phaseReplays
		return m, rm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.records.collect()
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateReplays handles updates in the replay browser.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if rm, ok := newModel.(ReplaysModel); ok {
		m.replays = &rm
	}

	switch {
	case m.replays.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.replays.IsGoingBack():
		m.toMenu()
		return m, m.menu.Init()

	case m.replays.Selected() != nil:
		id := *m.replays.Selected()
		wm, err := m.openReplay(id)
		if err != nil {
			m.status = err.Error()
			m.toMenu()
			return m, nil
		}
		m.watch = &wm
		m.phase = phaseWatching
		return m, wm.Init()
	}

	return m, cmd
}

// openReplay loads a replay and builds its viewer.
func (m SessionModel) openReplay(id int64) (WatchModel, error) {
	if m.opts.Store == nil {
		return WatchModel{}, fmt.Errorf("tui: no replay database")
	}
	r, err := m.opts.Store.ReplayByID(id)
	if err != nil {
		return WatchModel{}, err
	}
	if r == nil {
		return WatchModel{}, fmt.Errorf("tui: replay %d not found", id)
	}
	return NewWatchModel(*r, m.config.ScreenW, m.config.ScreenH)
}

// updateWatch handles updates while watching a replay.
func (m SessionModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.watch.Update(msg)
	if wm, ok := newModel.(WatchModel); ok {
		m.watch = &wm
	}

	switch {
	case m.watch.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.watch.IsGoingBack():
		rm := NewReplaysModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.replays = &rm
		m.watch = nil
		m.phase = phaseReplays
		return m, rm.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phasePlaying:
		return m.game.View()
	case phaseReplays:
		return m.replays.View()
	case phaseWatching:
		return m.watch.View()
	}

	view := m.menu.View()
	if m.status != "" {
		view += "\n" + centerText(m.status, m.config.ScreenW)
	}
	return view
}

// SavedReplays returns the IDs of replays saved during the session.
func (m SessionModel) SavedReplays() []int64 {
	return m.records.saved
}

// Close saves the recording of a game that was still running when the
// program stopped, such as an SSH session that disconnected. Any copy of
// the session may be closed; it must not run concurrently with Update.
func (m SessionModel) Close() {
	if m.records.game != nil {
		m.records.game.finishRecording()
	}
	m.records.collect()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.phase == phasePlaying
}

// Run starts a local session and blocks until the user quits. It returns
// the IDs of the replays saved along the way.
func Run(opts Options, cfg core.RuntimeConfig, startGame string) ([]int64, error) {
	model, err := NewSessionModel(opts, cfg, startGame)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	model.Close()
	if err != nil {
		return model.SavedReplays(), err
	}
	return model.SavedReplays(), nil
}

// RunReplay opens the replay viewer on r and blocks until the user quits.
// Going back from the viewer lands in the replay browser.
func RunReplay(opts Options, cfg core.RuntimeConfig, r storage.Replay) error {
	wm, err := NewWatchModel(r, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		return err
	}

	model := SessionModel{
		opts:    opts,
		config:  cfg,
		phase:   phaseWatching,
		menu:    NewMenuModel(cfg),
		watch:   &wm,
		records: &sessionRecords{},
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
