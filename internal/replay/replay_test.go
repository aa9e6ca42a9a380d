package replay

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// playSession drives a game frame by frame with a fixed input script and
// returns it with its recording.
func playSession(t *testing.T, g *snake.Game, seed int64, frames int) *Recorder {
	t.Helper()

	settings := config.DefaultSnakeConfig()
	settings.Grid.Width = 24
	settings.Grid.Height = 16
	settings.Start.Head = config.PointConfig{X: 5, Y: 5}
	settings.Start.Item = config.PointConfig{X: 5, Y: 9}

	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
	if err := g.ResetWith(settings, rc); err != nil {
		t.Fatalf("ResetWith: %v", err)
	}

	rec, err := ForGame(g)
	if err != nil {
		t.Fatalf("ForGame: %v", err)
	}
	g.SetTickObserver(rec.Observe)

	keys := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}
	for frame := 0; frame < frames; frame++ {
		in := core.NewInputFrame()
		if frame%35 == 0 {
			in.Set(keys[(frame/35)%len(keys)])
		}
		g.Step(in)
	}
	return rec
}

func TestRunReproducesGame(t *testing.T) {
	for _, g := range []*snake.Game{snake.New(), snake.NewGrid()} {
		t.Run(g.ID(), func(t *testing.T) {
			rec := playSession(t, g, 77, 900)

			r := rec.Replay()
			if r.Ticks != g.Board().Ticks() {
				t.Fatalf("recorded %d ticks, board ran %d", r.Ticks, g.Board().Ticks())
			}
			if r.GameID != g.ID() {
				t.Errorf("GameID = %q, expected %q", r.GameID, g.ID())
			}

			snap, err := Verify(r)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if want := snake.BoardSnapshot(g.Board()); snap != want {
				t.Errorf("re-simulation diverged:\n got  %+v\n want %+v", snap, want)
			}
		})
	}
}

func TestRecorderKeepsOnlySteeredTicks(t *testing.T) {
	rec, err := NewRecorder("snake", 1, 60, config.DefaultSnakeConfig())
	if err != nil {
		t.Fatal(err)
	}

	rec.Observe(snake.TickEvent{Tick: 1, Input: snake.DirLeft, Steered: true})
	rec.Observe(snake.TickEvent{Tick: 2, Input: snake.DirLeft})
	rec.Observe(snake.TickEvent{Tick: 3, Input: snake.DirUp, Steered: true, Score: 2})

	r := rec.Replay()
	if len(r.Inputs) != 2 {
		t.Fatalf("recorded %d inputs, expected 2", len(r.Inputs))
	}
	if r.Inputs[0] != (storage.ReplayInput{Tick: 1, Direction: "left"}) || r.Inputs[1] != (storage.ReplayInput{Tick: 3, Direction: "up"}) {
		t.Errorf("inputs = %+v", r.Inputs)
	}
	if r.Ticks != 3 || r.FinalScore != 2 {
		t.Errorf("Ticks=%d FinalScore=%d, expected 3 and 2", r.Ticks, r.FinalScore)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	rec := playSession(t, snake.New(), 3, 300)
	r := rec.Replay()
	r.FinalScore += 5

	if _, err := Verify(r); !errors.Is(err, ErrScoreMismatch) {
		t.Errorf("Verify error = %v, expected ErrScoreMismatch", err)
	}
}

func TestNewPlayerErrors(t *testing.T) {
	good := func() storage.Replay {
		data, _ := config.MarshalSnake(config.DefaultSnakeConfig())
		return storage.Replay{GameID: "snake", ConfigYAML: string(data), Ticks: 3}
	}

	tests := []struct {
		name   string
		modify func(*storage.Replay)
	}{
		{"unknown game", func(r *storage.Replay) { r.GameID = "tetris" }},
		{"bad yaml", func(r *storage.Replay) { r.ConfigYAML = "grid: [" }},
		{"invalid settings", func(r *storage.Replay) { r.ConfigYAML = "grid:\n  width: 1\n" }},
		{"bad direction", func(r *storage.Replay) {
			r.Inputs = []storage.ReplayInput{{Tick: 1, Direction: "sideways"}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := good()
			tc.modify(&r)
			if _, err := NewPlayer(r); err == nil {
				t.Error("NewPlayer should fail")
			}
		})
	}

	if _, err := NewPlayer(good()); err != nil {
		t.Errorf("NewPlayer on a valid recording: %v", err)
	}
}

func TestPlayerSteps(t *testing.T) {
	data, _ := config.MarshalSnake(config.DefaultSnakeConfig())
	p, err := NewPlayer(storage.Replay{
		GameID:     "snake",
		ConfigYAML: string(data),
		Ticks:      3,
		Inputs:     []storage.ReplayInput{{Tick: 2, Direction: "right"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	steps := 0
	for p.Step() {
		steps++
	}
	if steps != 3 || !p.Done() {
		t.Errorf("stepped %d times, expected 3", steps)
	}

	// Default start (10, 10) facing down: down, then right twice.
	head := p.Board().Head()
	if head.Position() != (core.Cell{X: 12, Y: 11}) || head.Facing() != snake.DirRight {
		t.Errorf("head = %v facing %v, expected (12, 11) facing right", head.Position(), head.Facing())
	}
}

func TestStoredReplayRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := snake.New()
	rec := playSession(t, g, 11, 600)

	id, err := store.SaveReplay(rec.Replay())
	if err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}
	loaded, err := store.ReplayByID(id)
	if err != nil || loaded == nil {
		t.Fatalf("ReplayByID: %v, %v", loaded, err)
	}

	if loaded.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60", loaded.TickRate)
	}

	snap, err := Verify(*loaded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if want := snake.BoardSnapshot(g.Board()); snap != want {
		t.Errorf("stored replay diverged:\n got  %+v\n want %+v", snap, want)
	}
}

func TestPlayerLedgerSelection(t *testing.T) {
	tests := []struct {
		name       string
		gameID     string
		configured string
		wantGrid   bool
	}{
		{"snake with sparse config", "snake", "sparse", false},
		{"snake with grid config", "snake", "grid", true},
		{"snake_grid with sparse config", "snake_grid", "sparse", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			settings := config.DefaultSnakeConfig()
			settings.Ledger = tc.configured
			data, err := config.MarshalSnake(settings)
			if err != nil {
				t.Fatal(err)
			}

			p, err := NewPlayer(storage.Replay{GameID: tc.gameID, ConfigYAML: string(data), Ticks: 1})
			if err != nil {
				t.Fatalf("NewPlayer: %v", err)
			}
			_, isGrid := p.Board().Ledger().(*snake.GridLedger)
			if isGrid != tc.wantGrid {
				t.Errorf("ledger is %T, expected grid=%v", p.Board().Ledger(), tc.wantGrid)
			}
		})
	}
}

func TestConfiguredGridLedgerReproduces(t *testing.T) {
	g := snake.New()
	settings := config.DefaultSnakeConfig()
	settings.Ledger = "grid"
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 21}
	if err := g.ResetWith(settings, rc); err != nil {
		t.Fatalf("ResetWith: %v", err)
	}
	rec, err := ForGame(g)
	if err != nil {
		t.Fatal(err)
	}
	g.SetTickObserver(rec.Observe)

	keys := []core.Action{core.ActionRight, core.ActionUp, core.ActionLeft, core.ActionDown}
	for frame := 0; frame < 400; frame++ {
		in := core.NewInputFrame()
		if frame%40 == 0 {
			in.Set(keys[(frame/40)%len(keys)])
		}
		g.Step(in)
	}

	snap, err := Verify(rec.Replay())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if want := snake.BoardSnapshot(g.Board()); snap != want {
		t.Errorf("re-simulation diverged:\n got  %+v\n want %+v", snap, want)
	}
}

func TestPlayerTickIntervalFollowsRecordedRate(t *testing.T) {
	data, _ := config.MarshalSnake(config.DefaultSnakeConfig())

	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, snake.TickInterval(75, 60)},
		{30, snake.TickInterval(75, 30)},
		{0, snake.TickInterval(75, 60)},
	}
	for _, tc := range tests {
		p, err := NewPlayer(storage.Replay{GameID: "snake", TickRate: tc.rate, ConfigYAML: string(data)})
		if err != nil {
			t.Fatal(err)
		}
		if got := p.TickInterval(); got != tc.want {
			t.Errorf("rate %d: TickInterval() = %v, expected %v", tc.rate, got, tc.want)
		}
	}

	// Playback matches live play, not the raw frame duration.
	if got := snake.TickInterval(75, 60); got <= 75*time.Millisecond {
		t.Errorf("60fps interval %v should exceed the 75ms frame duration", got)
	}
}
