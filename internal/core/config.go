package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameMillis returns the duration of one platform frame in milliseconds.
func (c RuntimeConfig) FrameMillis() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1000.0 / float64(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score  int  // Current score
	Paused bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each platform frame.
type StepResult struct {
	State GameState
	// Ticked is true when the frame ran a simulation tick.
	Ticked bool
}
