// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned bounding box on the character grid.
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

// Box is an axis-aligned bounding box in world units.
// X, Y is the bottom-left corner; Y grows upward.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox creates a box anchored at its bottom-left corner.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two boxes share any point.
// Edges are inclusive, so boxes that only touch count as overlapping.
func (b Box) Overlaps(other Box) bool {
	return !(b.Right() < other.X ||
		other.Right() < b.X ||
		b.Top() < other.Y ||
		other.Top() < b.Y)
}

// ClampF restricts a float64 value to be within [min, max].
// When max < min the range collapses to min.
func ClampF(val, min, max float64) float64 {
	if max < min {
		max = min
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
