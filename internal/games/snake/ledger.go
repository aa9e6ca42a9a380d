package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Ledger records where the head changed direction so trailing segments can
// replay those turns. Each cell holds at most one record; a later record at
// the same cell replaces the earlier one. Records are never pruned.
type Ledger interface {
	// Record stores a turn at cell, replacing any earlier turn there.
	Record(cell core.Cell, d Direction)
	// Lookup returns the turn recorded at exactly cell, if any.
	Lookup(cell core.Cell) (Direction, bool)
	// Len returns the number of cells holding a record.
	Len() int
	// Records returns every stored turn.
	Records() []TurnRecord
}

// LedgerKind selects a Ledger implementation.
type LedgerKind string

const (
	LedgerSparse LedgerKind = "sparse"
	LedgerGrid   LedgerKind = "grid"
)

// NewLedger builds a ledger of the given kind sized for bounds.
func NewLedger(kind LedgerKind, bounds core.Bounds) (Ledger, error) {
	switch kind {
	case LedgerSparse, "":
		return NewSparseLedger(), nil
	case LedgerGrid:
		return NewGridLedger(bounds), nil
	default:
		return nil, fmt.Errorf("snake: unknown ledger kind %q", kind)
	}
}

// ledgerKindOf reports which kind l is.
func ledgerKindOf(l Ledger) LedgerKind {
	if _, ok := l.(*GridLedger); ok {
		return LedgerGrid
	}
	return LedgerSparse
}

// SparseLedger keeps one record per cell in a map. Cells outside the grid
// are recorded like any other.
type SparseLedger struct {
	turns map[core.Cell]Direction
}

// NewSparseLedger creates an empty sparse ledger.
func NewSparseLedger() *SparseLedger {
	return &SparseLedger{turns: make(map[core.Cell]Direction)}
}

func (l *SparseLedger) Record(cell core.Cell, d Direction) {
	l.turns[cell] = d
}

func (l *SparseLedger) Lookup(cell core.Cell) (Direction, bool) {
	d, ok := l.turns[cell]
	return d, ok
}

func (l *SparseLedger) Len() int {
	return len(l.turns)
}

// Records returns every stored turn. Order is unspecified.
func (l *SparseLedger) Records() []TurnRecord {
	out := make([]TurnRecord, 0, len(l.turns))
	for cell, d := range l.turns {
		out = append(out, TurnRecord{Cell: cell, Direction: d})
	}
	return out
}

// turnSlot is an optional direction in a GridLedger.
type turnSlot struct {
	dir Direction
	set bool
}

// GridLedger is a fixed width x height array of optional turns, indexed
// [x][y]. Records outside the grid are dropped and lookups there miss.
type GridLedger struct {
	bounds core.Bounds
	slots  [][]turnSlot
	count  int
}

// NewGridLedger allocates a grid ledger covering bounds.
func NewGridLedger(bounds core.Bounds) *GridLedger {
	slots := make([][]turnSlot, bounds.Width)
	for x := range slots {
		slots[x] = make([]turnSlot, bounds.Height)
	}
	return &GridLedger{bounds: bounds, slots: slots}
}

func (l *GridLedger) Record(cell core.Cell, d Direction) {
	if !l.bounds.Contains(cell) {
		return
	}
	slot := &l.slots[cell.X][cell.Y]
	if !slot.set {
		l.count++
	}
	slot.dir = d
	slot.set = true
}

func (l *GridLedger) Lookup(cell core.Cell) (Direction, bool) {
	if !l.bounds.Contains(cell) {
		return 0, false
	}
	slot := l.slots[cell.X][cell.Y]
	return slot.dir, slot.set
}

func (l *GridLedger) Len() int {
	return l.count
}

// Records returns every stored turn, column by column.
func (l *GridLedger) Records() []TurnRecord {
	out := make([]TurnRecord, 0, l.count)
	for x, col := range l.slots {
		for y, slot := range col {
			if slot.set {
				out = append(out, TurnRecord{Cell: core.Cell{X: x, Y: y}, Direction: slot.dir})
			}
		}
	}
	return out
}

var (
	_ Ledger = (*SparseLedger)(nil)
	_ Ledger = (*GridLedger)(nil)
)
