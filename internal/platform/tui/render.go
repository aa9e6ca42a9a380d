package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// styleCache maps colors to lipgloss styles. SSH sessions render
// concurrently, so access is guarded.
var styleCache = struct {
	sync.RWMutex
	styles map[core.RGB]lipgloss.Style
}{styles: make(map[core.RGB]lipgloss.Style)}

// styleFor returns the foreground style for c, building it on first use.
func styleFor(c core.RGB) lipgloss.Style {
	if c.IsDefault() {
		return lipgloss.NewStyle()
	}

	styleCache.RLock()
	style, ok := styleCache.styles[c]
	styleCache.RUnlock()
	if ok {
		return style
	}

	style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	styleCache.Lock()
	styleCache.styles[c] = style
	styleCache.Unlock()
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
