package world

// Rect is an axis-aligned rectangle given by its corners. X2/Y2 are one past the
// last column/row a room built from it occupies.
type Rect struct {
	X1, Y1 int
	X2, Y2 int
}

// NewRect creates a rectangle from a top-left corner and a size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns the horizontal extent.
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Area returns width times height.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x < r.X2 && y >= r.Y1 && y < r.Y2
}

// Intersects returns true if this rectangle overlaps or touches another.
// Touching edges count, which keeps a wall between accepted rooms.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 &&
		r.Y2 >= other.Y1
}
