// Package core provides fundamental types and utilities for the snake platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Cell is an integer grid coordinate. Equality is exact integer equality.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String returns the cell as "(x, y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Bounds is the immutable size of a grid. Valid cells lie in
// [0, Width) x [0, Height). Nothing clamps positions to it automatically.
type Bounds struct {
	Width  int
	Height int
}

// NewBounds creates grid bounds with the given dimensions.
func NewBounds(width, height int) Bounds {
	return Bounds{Width: width, Height: height}
}

// Contains reports whether c lies inside the grid.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
