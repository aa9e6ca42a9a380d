package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// ErrScoreMismatch is returned by Verify when re-simulation ends on a
// different score than the one recorded.
var ErrScoreMismatch = errors.New("replay: final score mismatch")

// Player steps a board through a recorded session one tick at a time.
type Player struct {
	board    *snake.Board
	settings config.SnakeConfig
	inputs   map[uint64]snake.Direction
	total    uint64
	tickRate int
}

// NewPlayer rebuilds the starting board of a recording.
func NewPlayer(r storage.Replay) (*Player, error) {
	settings, err := config.ParseSnake([]byte(r.ConfigYAML))
	if err != nil {
		return nil, fmt.Errorf("replay: cannot parse settings: %w", err)
	}

	info, err := registry.Lookup(r.GameID)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	// An empty forced ledger lets the recorded settings choose.
	kind := snake.LedgerKind(info.Ledger)

	boardCfg, err := snake.BoardConfigFrom(settings, kind, r.Seed)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	inputs := make(map[uint64]snake.Direction, len(r.Inputs))
	for _, in := range r.Inputs {
		d, err := snake.ParseDirection(in.Direction)
		if err != nil {
			return nil, fmt.Errorf("replay: tick %d: %w", in.Tick, err)
		}
		inputs[in.Tick] = d
	}

	return &Player{
		board:    snake.NewBoard(boardCfg),
		settings: settings,
		inputs:   inputs,
		total:    r.Ticks,
		tickRate: r.TickRate,
	}, nil
}

// Step runs the next recorded tick. It returns false once the recording
// is exhausted.
func (p *Player) Step() bool {
	if p.Done() {
		return false
	}

	next := p.board.Ticks() + 1
	intended, ok := p.inputs[next]
	if !ok {
		intended = p.board.Head().Facing()
	}
	p.board.Tick(intended)
	return true
}

// Done reports whether every recorded tick has been replayed.
func (p *Player) Done() bool {
	return p.board.Ticks() >= p.total
}

// Board returns the board being replayed.
func (p *Player) Board() *snake.Board {
	return p.board
}

// Settings returns the settings the recording was made with.
func (p *Player) Settings() config.SnakeConfig {
	return p.settings
}

// TickInterval returns the time between board ticks when the session was
// played.
func (p *Player) TickInterval() time.Duration {
	return snake.TickInterval(p.settings.Timing.FrameDurationMs, p.tickRate)
}

// Total returns the number of ticks in the recording.
func (p *Player) Total() uint64 {
	return p.total
}

// Run re-simulates a whole recording and returns the final board state.
func Run(r storage.Replay) (snake.Snapshot, error) {
	p, err := NewPlayer(r)
	if err != nil {
		return snake.Snapshot{}, err
	}
	for p.Step() {
	}
	return snake.BoardSnapshot(p.board), nil
}

// Verify re-simulates a recording and checks the final score against the
// recorded one.
func Verify(r storage.Replay) (snake.Snapshot, error) {
	snap, err := Run(r)
	if err != nil {
		return snap, err
	}
	if snap.Score != r.FinalScore {
		return snap, fmt.Errorf("%w: recorded %d, simulated %d", ErrScoreMismatch, r.FinalScore, snap.Score)
	}
	return snap, nil
}
