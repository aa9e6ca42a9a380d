package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// BoardConfig describes the initial state of a board.
type BoardConfig struct {
	Bounds     core.Bounds
	HeadStart  core.Cell
	HeadFacing Direction
	ItemStart  core.Cell
	Ledger     Ledger   // nil means a fresh SparseLedger
	Spawner    *Spawner // nil means a spawner seeded with 0
	Theme      Theme
}

// Board is the simulation engine. It owns the head, the body, the item, the
// turn ledger and the score, and advances all of them one step per Tick.
// A Board is not safe for concurrent use.
type Board struct {
	bounds  core.Bounds
	head    Segment
	body    []Segment // append order; first is the oldest
	item    Item
	ledger  Ledger
	spawner *Spawner
	theme   Theme

	score         int
	ticks         uint64
	growthPending bool
}

// NewBoard creates a board in its starting state.
func NewBoard(cfg BoardConfig) *Board {
	ledger := cfg.Ledger
	if ledger == nil {
		ledger = NewSparseLedger()
	}
	spawner := cfg.Spawner
	if spawner == nil {
		spawner = NewSpawner(0)
	}
	return &Board{
		bounds:  cfg.Bounds,
		head:    NewSegment(cfg.HeadStart, cfg.HeadFacing),
		item:    NewItem(cfg.ItemStart),
		ledger:  ledger,
		spawner: spawner,
		theme:   cfg.Theme,
	}
}

// Tick advances the simulation by exactly one step.
//
// If intended differs from the head's facing, the head turns and the turn is
// recorded at the head's cell. Then either a pending growth appends a
// stationary segment at the head's cell, or every body segment adopts the
// turn recorded at its own cell (if any) and advances. The head advances
// last, and eating the item scores, respawns it and schedules growth for the
// next tick.
func (b *Board) Tick(intended Direction) {
	b.ticks++

	if intended != b.head.Facing() {
		b.head.SetFacing(intended)
		b.ledger.Record(b.head.Position(), intended)
	}

	if b.growthPending {
		b.body = append(b.body, NewSegment(b.head.Position(), b.head.Facing()))
		b.growthPending = false
	} else {
		// Each segment reads only its own cell and the ledger, so the
		// order of updates does not matter.
		for i := range b.body {
			seg := &b.body[i]
			if d, ok := b.ledger.Lookup(seg.Position()); ok {
				seg.SetFacing(d)
			}
			seg.Advance()
		}
	}

	b.head.Advance()

	if samePosition(&b.head, b.item) {
		b.score++
		b.item = NewItem(b.spawner.Spawn(b.bounds))
		b.growthPending = true
	}
}

// Score returns the number of items eaten.
func (b *Board) Score() int {
	return b.score
}

// Renderables returns the draw list: the item first, then body segments in
// append order, then the head last so it wins any overdraw.
func (b *Board) Renderables() []Renderable {
	out := make([]Renderable, 0, len(b.body)+2)
	out = append(out, NewRenderable(b.theme.Item, b.item))
	for _, seg := range b.body {
		out = append(out, NewRenderable(b.theme.Body, seg))
	}
	out = append(out, NewRenderable(b.theme.Head, b.head))
	return out
}

// Head returns a copy of the head segment.
func (b *Board) Head() Segment {
	return b.head
}

// Body returns a copy of the body segments in append order.
func (b *Board) Body() []Segment {
	out := make([]Segment, len(b.body))
	copy(out, b.body)
	return out
}

// Item returns the current item.
func (b *Board) Item() Item {
	return b.item
}

// Bounds returns the grid size.
func (b *Board) Bounds() core.Bounds {
	return b.bounds
}

// Ledger returns the board's turn ledger.
func (b *Board) Ledger() Ledger {
	return b.ledger
}

// GrowthPending reports whether the next tick will append a segment.
func (b *Board) GrowthPending() bool {
	return b.growthPending
}

// Ticks returns the number of ticks run so far.
func (b *Board) Ticks() uint64 {
	return b.ticks
}
