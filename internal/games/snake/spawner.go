package snake

import (
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Spawner picks item positions. X is drawn uniformly from [1, width) and Y
// from [1, height), so row 0 and column 0 never receive an item. The snake
// is not avoided; a new item may land on it.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner with a deterministic source.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn returns a cell for a new item. Bounds must be at least 2x2.
func (s *Spawner) Spawn(b core.Bounds) core.Cell {
	return core.Cell{
		X: 1 + s.rng.Intn(b.Width-1),
		Y: 1 + s.rng.Intn(b.Height-1),
	}
}
