// Package replay records played sessions and re-simulates them headlessly.
//
// A recording is the seed, the settings and the steering input of every
// board tick that had one. Ticks without input keep the head's facing, so
// replaying those inputs over a board built from the same seed and settings
// reproduces the session exactly.
package replay

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Recorder collects tick events from a running game.
// It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	gameID     string
	seed       int64
	tickRate   int
	configYAML string
	inputs     []storage.ReplayInput
	ticks      uint64
	score      int
}

// NewRecorder starts a recording for a game built from settings and seed,
// stepped at tickRate platform frames per second.
func NewRecorder(gameID string, seed int64, tickRate int, settings config.SnakeConfig) (*Recorder, error) {
	data, err := config.MarshalSnake(settings)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode settings: %w", err)
	}
	return &Recorder{
		gameID:     gameID,
		seed:       seed,
		tickRate:   tickRate,
		configYAML: string(data),
	}, nil
}

// ForGame starts a recording for the game's current board.
func ForGame(g *snake.Game) (*Recorder, error) {
	return NewRecorder(g.ID(), g.Seed(), g.TickRate(), g.Settings())
}

// Observe records one tick. It matches snake.Game.SetTickObserver.
func (r *Recorder) Observe(ev snake.TickEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ticks = ev.Tick
	r.score = ev.Score
	if ev.Steered {
		r.inputs = append(r.inputs, storage.ReplayInput{
			Tick:      ev.Tick,
			Direction: ev.Input.String(),
		})
	}
}

// Ticks returns the number of ticks recorded.
func (r *Recorder) Ticks() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

// Replay returns the recording in storable form.
func (r *Recorder) Replay() storage.Replay {
	r.mu.Lock()
	defer r.mu.Unlock()

	inputs := make([]storage.ReplayInput, len(r.inputs))
	copy(inputs, r.inputs)
	return storage.Replay{
		GameID:     r.gameID,
		Seed:       r.seed,
		TickRate:   r.tickRate,
		ConfigYAML: r.configYAML,
		Ticks:      r.ticks,
		FinalScore: r.score,
		Inputs:     inputs,
	}
}
