package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestSpawnRange(t *testing.T) {
	bounds := core.NewBounds(8, 5)
	s := NewSpawner(999)

	seenX := make(map[int]bool)
	seenY := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		c := s.Spawn(bounds)
		if c.X < 1 || c.X >= bounds.Width || c.Y < 1 || c.Y >= bounds.Height {
			t.Fatalf("Spawn() = %v, outside [1,%d) x [1,%d)", c, bounds.Width, bounds.Height)
		}
		seenX[c.X] = true
		seenY[c.Y] = true
	}

	// Every legal column and row should come up over 2000 draws.
	if len(seenX) != bounds.Width-1 {
		t.Errorf("saw %d distinct x values, expected %d", len(seenX), bounds.Width-1)
	}
	if len(seenY) != bounds.Height-1 {
		t.Errorf("saw %d distinct y values, expected %d", len(seenY), bounds.Height-1)
	}
}

func TestSpawnSmallestGrid(t *testing.T) {
	s := NewSpawner(1)
	for i := 0; i < 10; i++ {
		if c := s.Spawn(core.NewBounds(2, 2)); c != (core.Cell{X: 1, Y: 1}) {
			t.Fatalf("Spawn() on 2x2 = %v, expected (1, 1)", c)
		}
	}
}

func TestSpawnDeterminism(t *testing.T) {
	bounds := core.NewBounds(80, 50)
	a := NewSpawner(42)
	b := NewSpawner(42)

	for i := 0; i < 100; i++ {
		if ca, cb := a.Spawn(bounds), b.Spawn(bounds); ca != cb {
			t.Fatalf("draw %d differs: %v vs %v", i, ca, cb)
		}
	}
}
