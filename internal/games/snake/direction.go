package snake

import (
	"fmt"
	"strings"
)

// Direction is a segment's facing. There is no "none" value: every segment
// always faces exactly one way.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step for the direction. Up decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. Reversal is never blocked by the
// board; this is informational.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection parses "up", "down", "left" or "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return DirDown, fmt.Errorf("snake: unknown direction %q", s)
}
