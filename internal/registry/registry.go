// Package registry provides a global registry of snake variants.
// Variants register themselves in init() functions, so the platform and the
// replay player can find them by the id stored with a session.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is the interface every variant implements. Variants contain pure
// logic with no Bubble Tea dependency; the platform handles input mapping,
// frame pacing and terminal output.
type Game interface {
	// ID returns the variant id (e.g., "snake", "snake_grid").
	// It is stored with every replay.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// ForcedLedger returns the turn ledger kind the variant always runs
	// with, or "" when the configured ledger is used.
	ForcedLedger() string

	// Reset initializes or restarts the game.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one platform frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and pause state.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID     string
	Title  string
	Ledger string // Forced ledger kind; empty means the config decides
}

// Factory is a function that creates a new instance of a variant.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant factory to the registry.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Metadata comes from a throwaway instance.
	g := f()
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title(), Ledger: g.ForcedLedger()},
		factory: f,
	}
}

// List returns information about all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered variant.
func Lookup(id string) (GameInfo, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return GameInfo{}, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.info, nil
}

// Create instantiates a new variant by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
