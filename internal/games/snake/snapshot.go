package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Frames        uint64
	Score         int
	BodyLen       int
	HeadX         int
	HeadY         int
	Dir           Direction
	ItemX         int
	ItemY         int
	Turns         int
	GrowthPending bool
	State         GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	snap := BoardSnapshot(g.board)
	snap.Frames = g.frames
	snap.State = state
	return snap
}

// BoardSnapshot captures a board's state without any platform fields.
func BoardSnapshot(b *Board) Snapshot {
	head := b.Head()
	item := b.Item().Position()
	return Snapshot{
		Tick:          b.Ticks(),
		Score:         b.Score(),
		BodyLen:       len(b.body),
		HeadX:         head.Position().X,
		HeadY:         head.Position().Y,
		Dir:           head.Facing(),
		ItemX:         item.X,
		ItemY:         item.Y,
		Turns:         b.Ledger().Len(),
		GrowthPending: b.GrowthPending(),
		State:         StatePlaying,
	}
}
