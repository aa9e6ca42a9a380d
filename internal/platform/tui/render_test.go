package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenKeepsGlyphs(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.SetColored(1, 0, '@', core.ColorGreen)
	s.SetColored(2, 0, '@', core.ColorGreen)
	s.SetColored(4, 1, '▲', core.ColorRed)

	out := RenderScreen(s)

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "@@") || !strings.Contains(out, "▲") {
		t.Errorf("glyphs missing from %q", out)
	}
}

func TestStyleForCachesColors(t *testing.T) {
	c := core.RGB{R: 1, G: 2, B: 3}
	styleFor(c)
	styleFor(c)

	styleCache.RLock()
	_, ok := styleCache.styles[c]
	styleCache.RUnlock()
	if !ok {
		t.Error("style not cached")
	}

	styleFor(core.ColorDefault)
	styleCache.RLock()
	_, ok = styleCache.styles[core.ColorDefault]
	styleCache.RUnlock()
	if ok {
		t.Error("default color should not be cached")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("too long", 4); got != "too long" {
		t.Errorf("centerText = %q", got)
	}
}
