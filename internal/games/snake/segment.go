package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Positioned is anything that occupies a grid cell.
type Positioned interface {
	Position() core.Cell
}

// Segment is a positioned, facing-aware unit. The head and every body node
// are segments.
type Segment struct {
	pos    core.Cell
	facing Direction
}

// NewSegment creates a segment at pos facing the given direction.
func NewSegment(pos core.Cell, facing Direction) Segment {
	return Segment{pos: pos, facing: facing}
}

// Position returns the segment's current cell.
func (s Segment) Position() core.Cell {
	return s.pos
}

// Facing returns the segment's current direction.
func (s Segment) Facing() Direction {
	return s.facing
}

// SetFacing replaces the facing unconditionally, including reversals.
// It does not move the segment.
func (s *Segment) SetFacing(d Direction) {
	s.facing = d
}

// Advance moves the segment exactly one cell along its facing.
func (s *Segment) Advance() {
	s.pos = s.pos.Add(s.facing.Delta())
}

// Item is the edible item. Exactly one exists on a board at any time.
type Item struct {
	pos core.Cell
}

// NewItem creates an item at pos.
func NewItem(pos core.Cell) Item {
	return Item{pos: pos}
}

// Position returns the item's cell.
func (i Item) Position() core.Cell {
	return i.pos
}

// TurnRecord says: whoever stands on Cell should adopt Direction.
type TurnRecord struct {
	Cell      core.Cell
	Direction Direction
}

// Position returns the cell where the turn happened.
func (t TurnRecord) Position() core.Cell {
	return t.Cell
}

// samePosition reports whether two positioned values share a cell.
func samePosition(a, b Positioned) bool {
	return a.Position() == b.Position()
}
