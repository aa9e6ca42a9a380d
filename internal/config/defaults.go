package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:  80,
			Height: 22,
		},
		Timing: TimingConfig{
			FrameDurationMs: 75,
		},
		Start: StartConfig{
			Head:   PointConfig{X: 10, Y: 10},
			Facing: "down",
			Item:   PointConfig{X: 20, Y: 20},
		},
		Ledger: "sparse",
		Theme: ThemeConfig{
			Head: GlyphConfig{Glyph: "@", Color: "#00ff00"},
			Body: GlyphConfig{Glyph: "@", Color: "#00ff00"},
			Item: GlyphConfig{Glyph: "▲", Color: "#ff0000"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for the game.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
