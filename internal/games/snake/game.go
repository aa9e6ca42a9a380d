package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// hudHeight is the number of screen rows above the grid.
const hudHeight = 1

// TickEvent describes one simulation tick for observers (replay recording,
// spectators).
type TickEvent struct {
	Tick        uint64
	Input       Direction
	Steered     bool // Input came from a key press rather than the current facing
	Score       int
	Renderables []Renderable
	Turns       []TurnRecord // Every turn in the ledger after the tick
}

// Game adapts a Board to the platform: it accumulates frame time into
// simulation ticks, buffers steering between ticks and draws the board.
type Game struct {
	variant  LedgerKind // Forced ledger; empty uses settings.Ledger
	ledger   LedgerKind // Ledger the current board runs with
	settings config.SnakeConfig
	board    *Board
	rng      *rand.Rand
	seed     int64

	tickRate    int
	frameMillis float64 // Platform frame length
	frameTime   float64 // Accumulated since the last tick
	frames      uint64

	pendingDir Direction
	hasPending bool

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	observer func(TickEvent)
}

var configPath string

// SetConfigPath sets the config file path used by subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a Snake game using the configured turn ledger.
func New() *Game {
	return &Game{}
}

// NewGrid creates a Snake game using the fixed-grid turn ledger.
func NewGrid() *Game {
	return &Game{variant: LedgerGrid}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_grid", func() registry.Game {
		return NewGrid()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == LedgerGrid {
		return "snake_grid"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == LedgerGrid {
		return "Snake (Grid Ledger)"
	}
	return "Snake"
}

// ForcedLedger returns the ledger kind the variant always uses, or "" when
// the configuration chooses.
func (g *Game) ForcedLedger() string {
	return string(g.variant)
}

// Variant returns the ledger kind the current board runs with.
func (g *Game) Variant() LedgerKind {
	return g.ledger
}

// SetTickObserver registers fn to be called after every simulation tick.
func (g *Game) SetTickObserver(fn func(TickEvent)) {
	g.observer = fn
}

// Reset initializes/restarts the game. Settings come from the configured
// path; if they cannot be loaded the defaults are used.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings, err := config.LoadSnake(configPath)
	if err != nil {
		settings = config.DefaultSnakeConfig()
	}
	if err := g.ResetWith(settings, cfg); err != nil {
		// Defaults always validate.
		_ = g.ResetWith(config.DefaultSnakeConfig(), cfg)
	}
}

// ResetWith initializes the game from explicit settings.
func (g *Game) ResetWith(settings config.SnakeConfig, cfg core.RuntimeConfig) error {
	boardCfg, err := BoardConfigFrom(settings, g.variant, cfg.Seed)
	if err != nil {
		return err
	}

	g.settings = settings
	g.ledger = ledgerKindOf(boardCfg.Ledger)
	g.board = NewBoard(boardCfg)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seed = cfg.Seed
	g.tickRate = cfg.TickRate
	g.frameMillis = cfg.FrameMillis()
	g.frameTime = 0
	g.frames = 0
	g.hasPending = false
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	return nil
}

// Resize updates the screen size without touching the board. The game
// pauses while the grid and HUD do not fit.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.settings.Grid.Width || h < g.settings.Grid.Height+hudHeight
}

// Step advances the game by one platform frame. A simulation tick runs once
// more than frame_duration_ms of frame time has accumulated.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.frames++

	if input.Has(core.ActionRestart) {
		cfg := core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		}
		if err := g.ResetWith(g.settings, cfg); err == nil {
			return core.StepResult{State: g.State()}
		}
	}

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if d, ok := directionFor(input.Steer); ok {
		g.pendingDir = d
		g.hasPending = true
	}

	g.frameTime += g.frameMillis
	if g.frameTime <= g.settings.Timing.FrameDurationMs {
		return core.StepResult{State: g.State()}
	}
	g.frameTime = 0
	g.tickBoard()

	return core.StepResult{State: g.State(), Ticked: true}
}

// tickBoard runs one board tick with the buffered direction, or the current
// facing when nothing was pressed.
func (g *Game) tickBoard() {
	intended := g.board.Head().Facing()
	steered := g.hasPending
	if steered {
		intended = g.pendingDir
	}
	g.hasPending = false

	g.board.Tick(intended)

	if g.observer != nil {
		g.observer(TickEvent{
			Tick:        g.board.Ticks(),
			Input:       intended,
			Steered:     steered,
			Score:       g.board.Score(),
			Renderables: g.board.Renderables(),
			Turns:       g.board.Ledger().Records(),
		})
	}
}

// directionFor maps a steering action to a direction.
func directionFor(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return DirDown, false
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.Clear()
		dst.DrawText(0, 0, fmt.Sprintf("Score: %d", g.board.Score()))
		DrawOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.settings.Grid.Width, g.settings.Grid.Height+hudHeight))
		return
	}

	DrawBoard(dst, g.board)

	if g.paused {
		DrawOverlay(dst, "Paused", "Press P to continue")
	}
}

// DrawBoard clears dst and draws the score line followed by the board's
// renderables in order, one row below the HUD.
func DrawBoard(dst *core.Screen, b *Board) {
	dst.Clear()
	dst.DrawText(0, 0, fmt.Sprintf("Score: %d", b.Score()))
	for _, r := range b.Renderables() {
		dst.SetColored(r.X, r.Y+hudHeight, r.Glyph, r.Color)
	}
}

// DrawOverlay draws a centered two-line message box.
func DrawOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// State returns the current game state. The board never ends a game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.board.Score(),
		Paused: g.paused,
	}
}

// Board returns the underlying simulation.
func (g *Game) Board() *Board {
	return g.board
}

// Settings returns the configuration the current board was built from.
func (g *Game) Settings() config.SnakeConfig {
	return g.settings
}

// TickRate returns the platform frame rate the game is stepped at.
func (g *Game) TickRate() int {
	return g.tickRate
}

// FramesPerTick returns how many platform frames of frameMillis pass
// between board ticks. It accumulates the same way Step does, so a tick
// lands on the first frame that exceeds frameDurationMs.
func FramesPerTick(frameDurationMs, frameMillis float64) int {
	if frameMillis <= 0 {
		return 1
	}
	n, acc := 0, 0.0
	for acc <= frameDurationMs {
		acc += frameMillis
		n++
	}
	return n
}

// TickInterval returns the wall-clock time between board ticks for a game
// stepped at tickRate frames per second.
func TickInterval(frameDurationMs float64, tickRate int) time.Duration {
	frameMillis := core.RuntimeConfig{TickRate: tickRate}.FrameMillis()
	n := FramesPerTick(frameDurationMs, frameMillis)
	return time.Duration(float64(n) * frameMillis * float64(time.Millisecond))
}

// Seed returns the seed the current board was built with.
func (g *Game) Seed() int64 {
	return g.seed
}
