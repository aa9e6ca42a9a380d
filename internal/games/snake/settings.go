package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// BoardConfigFrom builds a BoardConfig from validated settings. The seed
// drives the item spawner; kind overrides settings.Ledger when non-empty.
func BoardConfigFrom(settings config.SnakeConfig, kind LedgerKind, seed int64) (BoardConfig, error) {
	if err := settings.Validate(); err != nil {
		return BoardConfig{}, err
	}

	if kind == "" {
		kind = LedgerKind(settings.Ledger)
	}
	bounds := settings.Bounds()
	ledger, err := NewLedger(kind, bounds)
	if err != nil {
		return BoardConfig{}, err
	}

	facing, err := ParseDirection(settings.Start.Facing)
	if err != nil {
		return BoardConfig{}, err
	}

	return BoardConfig{
		Bounds:     bounds,
		HeadStart:  settings.Start.Head.Cell(),
		HeadFacing: facing,
		ItemStart:  settings.Start.Item.Cell(),
		Ledger:     ledger,
		Spawner:    NewSpawner(seed),
		Theme:      themeFrom(settings.Theme),
	}, nil
}

// themeFrom converts validated theme settings. Colors were checked by
// Validate, so parse errors fall back to the default color.
func themeFrom(t config.ThemeConfig) Theme {
	return Theme{
		Head: appearanceFrom(t.Head),
		Body: appearanceFrom(t.Body),
		Item: appearanceFrom(t.Item),
	}
}

func appearanceFrom(g config.GlyphConfig) Appearance {
	c, err := core.ParseHex(g.Color)
	if err != nil {
		c = core.ColorDefault
	}
	return Appearance{Glyph: g.Rune(), Color: c}
}
