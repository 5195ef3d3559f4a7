// Package physics provides bounding-box geometry and movement clamping.
package physics

import "math"

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box. X and Y are the bottom-left corner
// in world units (y grows upward); W and H are never negative.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rectangle, flooring negative dimensions at zero.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: math.Max(w, 0), H: math.Max(h, 0)}
}

// RectAround creates a rectangle of the given size centred on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return NewRect(cx-w/2, cy-h/2, w, h)
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y + r.H
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersects reports whether the two rectangles overlap with positive area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Top() && r.Top() > other.Y
}

// Intersects is the free-function form of Rect.Intersects.
func Intersects(a, b Rect) bool {
	return a.Intersects(b)
}

// Limits holds the largest displacement allowed in each direction.
// Left and Down are <= 0 while the box is inside its bounds; Right and Up are >= 0.
type Limits struct {
	Left, Right float64
	Down, Up    float64
}

// Limits returns how far r may move before leaving bounds.
func (r Rect) Limits(bounds Rect) Limits {
	return Limits{
		Left:  bounds.X - r.X,
		Right: bounds.Right() - r.Right(),
		Down:  bounds.Y - r.Y,
		Up:    bounds.Top() - r.Top(),
	}
}

// ClampMove limits a signed displacement: positive moves are capped at max,
// everything else is floored at min.
func ClampMove(move, min, max float64) float64 {
	if move > 0 {
		return math.Min(move, max)
	}
	return math.Max(move, min)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
