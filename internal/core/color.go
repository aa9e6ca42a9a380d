package core

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is a 24-bit foreground color for a screen cell.
type RGB struct {
	R, G, B uint8
}

// Predefined colors matching the classic console palette.
var (
	ColorDefault = RGB{}
	ColorBlack   = RGB{0, 0, 0}
	ColorRed     = RGB{255, 0, 0}
	ColorGreen   = RGB{0, 255, 0}
	ColorYellow  = RGB{255, 255, 0}
	ColorWhite   = RGB{255, 255, 255}
	ColorGray    = RGB{128, 128, 128}
)

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsDefault reports whether c is the zero color. Renderers draw it, and
// therefore black, in the terminal's default foreground.
func (c RGB) IsDefault() bool {
	return c == ColorDefault
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
