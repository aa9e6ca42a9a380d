package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

// Options carries the services a session plugs into. Every field is
// optional.
type Options struct {
	Store  *storage.Store // Replays are saved here
	Hub    *spectate.Hub  // Board ticks are broadcast here
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// tickSink forwards board ticks to the current recording and the
// spectator hub. It is shared by copies of a GameModel.
type tickSink struct {
	rec   *replay.Recorder
	hub   *spectate.Hub
	saved []int64
}

func (s *tickSink) observe(ev snake.TickEvent) {
	if s.rec != nil {
		s.rec.Observe(ev)
	}
	if s.hub != nil {
		s.hub.Observe(ev)
	}
}

// GameModel runs one snake game: it feeds key presses into platform
// frames, records every session for replay and draws the key help.
type GameModel struct {
	game       *snake.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       GameKeyMap
	help       help.Model
	sink       *tickSink
	quitting   bool
	backToMenu bool
}

// NewGameModel creates and resets the game registered under gameID.
func NewGameModel(gameID string, opts Options, cfg core.RuntimeConfig) (GameModel, error) {
	rg, err := registry.Create(gameID)
	if err != nil {
		return GameModel{}, err
	}
	game, ok := rg.(*snake.Game)
	if !ok {
		return GameModel{}, fmt.Errorf("tui: %q is not a snake variant", gameID)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sink := &tickSink{hub: opts.Hub}
	game.SetTickObserver(sink.observe)
	area := gameArea(cfg)
	game.Reset(area)

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(area.ScreenW, area.ScreenH),
		opts:       opts,
		logger:     opts.logger(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keys:       DefaultGameKeyMap(),
		help:       h,
		sink:       sink,
	}
	m.startRecording()
	return m, nil
}

// gameArea returns cfg with the help row taken off the screen height.
func gameArea(cfg core.RuntimeConfig) core.RuntimeConfig {
	cfg.ScreenH = core.Max(cfg.ScreenH-helpHeight, 0)
	cfg.ScreenW = core.Max(cfg.ScreenW, 0)
	return cfg
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		area := gameArea(m.config)
		m.screen.Resize(area.ScreenW, area.ScreenH)
		m.game.Resize(area.ScreenW, area.ScreenH)
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.finishRecording()
		m.quitting = true
	case action == core.ActionBack:
		m.finishRecording()
		m.backToMenu = true
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick runs one platform frame.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	restart := m.inputFrame.Has(core.ActionRestart)
	if restart {
		m.finishRecording()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restart {
		m.startRecording()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// startRecording begins recording the game's current board.
func (m GameModel) startRecording() {
	rec, err := replay.ForGame(m.game)
	if err != nil {
		m.logger.Warn("replay recording disabled", "error", err)
	}
	m.sink.rec = rec
}

// finishRecording saves the current recording if anything was played.
func (m GameModel) finishRecording() {
	rec := m.sink.rec
	m.sink.rec = nil
	if rec == nil || rec.Ticks() == 0 || m.opts.Store == nil {
		return
	}

	r := rec.Replay()
	id, err := m.opts.Store.SaveReplay(r)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.logger.Info("replay saved", "id", id, "game", r.GameID, "score", r.FinalScore, "ticks", r.Ticks)
	m.sink.saved = append(m.sink.saved, id)
}

// View renders the game and the key help.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the running game.
func (m GameModel) Game() *snake.Game {
	return m.game
}

// State returns the game state after the last frame.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// SavedReplays returns the IDs of replays saved by this model.
func (m GameModel) SavedReplays() []int64 {
	return m.sink.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
