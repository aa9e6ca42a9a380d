package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Appearance is how an entity is drawn.
type Appearance struct {
	Glyph rune
	Color core.RGB
}

// Theme holds the appearance of each entity kind.
type Theme struct {
	Head Appearance
	Body Appearance
	Item Appearance
}

// DefaultTheme matches the classic look: green '@' snake, red '▲' item.
func DefaultTheme() Theme {
	return Theme{
		Head: Appearance{Glyph: '@', Color: core.ColorGreen},
		Body: Appearance{Glyph: '@', Color: core.ColorGreen},
		Item: Appearance{Glyph: '▲', Color: core.ColorRed},
	}
}

// Renderable is a drawable record handed to renderers.
type Renderable struct {
	Glyph rune
	Color core.RGB
	X, Y  int
}

// NewRenderable captures p's current cell with the given appearance.
func NewRenderable(a Appearance, p Positioned) Renderable {
	pos := p.Position()
	return Renderable{Glyph: a.Glyph, Color: a.Color, X: pos.X, Y: pos.Y}
}

// Position returns the renderable's cell.
func (r Renderable) Position() core.Cell {
	return core.Cell{X: r.X, Y: r.Y}
}
