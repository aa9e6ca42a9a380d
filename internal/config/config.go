// Package config provides YAML-based game configuration loading for the
// snake platform.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid   GridConfig   `yaml:"grid"`
	Timing TimingConfig `yaml:"timing"`
	Start  StartConfig  `yaml:"start"`
	Ledger string       `yaml:"ledger"` // "sparse" or "grid"
	Theme  ThemeConfig  `yaml:"theme"`
}

// GridConfig defines the simulation grid size.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig decouples the render frame rate from simulation speed.
type TimingConfig struct {
	FrameDurationMs float64 `yaml:"frame_duration_ms"`
}

// StartConfig defines the initial head and item placement.
type StartConfig struct {
	Head   PointConfig `yaml:"head"`
	Facing string      `yaml:"facing"`
	Item   PointConfig `yaml:"item"`
}

// PointConfig is a grid coordinate in YAML.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Cell converts the point to a core.Cell.
func (p PointConfig) Cell() core.Cell {
	return core.Cell{X: p.X, Y: p.Y}
}

// fit clamps p into [1, width) x [1, height), the range the item spawner
// draws from.
func (p PointConfig) fit(g GridConfig) PointConfig {
	return PointConfig{
		X: core.Max(1, core.Min(p.X, g.Width-1)),
		Y: core.Max(1, core.Min(p.Y, g.Height-1)),
	}
}

// ThemeConfig defines glyphs and colors for each entity.
type ThemeConfig struct {
	Head GlyphConfig `yaml:"head"`
	Body GlyphConfig `yaml:"body"`
	Item GlyphConfig `yaml:"item"`
}

// GlyphConfig is a single character and a "#rrggbb" color.
type GlyphConfig struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// Rune returns the first rune of the glyph, or '?' when empty.
func (g GlyphConfig) Rune() rune {
	r, _ := utf8.DecodeRuneInString(g.Glyph)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}

// Bounds returns the configured grid bounds.
func (c SnakeConfig) Bounds() core.Bounds {
	return core.NewBounds(c.Grid.Width, c.Grid.Height)
}

var validFacings = []string{"up", "down", "left", "right"}

// Validate checks the configuration for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	var errs []error

	// The item spawner draws from [1, width) and [1, height).
	if c.Grid.Width < 2 || c.Grid.Height < 2 {
		errs = append(errs, fmt.Errorf("grid must be at least 2x2, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Timing.FrameDurationMs <= 0 {
		errs = append(errs, fmt.Errorf("timing.frame_duration_ms must be positive, got %v", c.Timing.FrameDurationMs))
	}
	if !containsFold(validFacings, c.Start.Facing) {
		errs = append(errs, fmt.Errorf("start.facing %q is not one of %s", c.Start.Facing, strings.Join(validFacings, ", ")))
	}
	switch c.Ledger {
	case "", "sparse", "grid":
	default:
		errs = append(errs, fmt.Errorf("ledger %q is not one of sparse, grid", c.Ledger))
	}

	bounds := c.Bounds()
	if !bounds.Contains(c.Start.Head.Cell()) {
		errs = append(errs, fmt.Errorf("start.head %v is outside the grid", c.Start.Head.Cell()))
	}
	if !bounds.Contains(c.Start.Item.Cell()) {
		errs = append(errs, fmt.Errorf("start.item %v is outside the grid", c.Start.Item.Cell()))
	}

	for name, g := range map[string]GlyphConfig{"head": c.Theme.Head, "body": c.Theme.Body, "item": c.Theme.Item} {
		if g.Glyph == "" {
			errs = append(errs, fmt.Errorf("theme.%s.glyph is empty", name))
		}
		if _, err := core.ParseHex(g.Color); err != nil {
			errs = append(errs, fmt.Errorf("theme.%s.color: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
