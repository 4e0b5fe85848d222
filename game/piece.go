package game

import "iter"

// Point is a cell coordinate, either local to a shape or absolute on the board.
type Point struct {
	X, Y int
}

// Shape is a row-major occupancy matrix for one rotation of a piece.
type Shape [][]bool

// Height returns the number of rows in the shape.
func (s Shape) Height() int { return len(s) }

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Cells iterates the local coordinates of occupied cells, row by row.
func (s Shape) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for y, row := range s {
			for x, filled := range row {
				if !filled {
					continue
				}
				if !yield(Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// Rotate returns a copy of the shape turned 90 degrees clockwise.
// The result has the width and height of the receiver swapped.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	rotated := make(Shape, w)
	for i := range rotated {
		rotated[i] = make([]bool, h)
	}

	for i := range h {
		for j := range w {
			rotated[j][h-1-i] = s[i][j]
		}
	}
	return rotated
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i, row := range s {
		c[i] = append([]bool(nil), row...)
	}
	return c
}

// Equal reports whether two shapes have the same dimensions and occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for i := range s {
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Piece is the falling, player controlled block group.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
	Color ColorID
}

// Cells iterates the absolute board coordinates of the piece's occupied cells.
func (p Piece) Cells() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for c := range p.Shape.Cells() {
			if !yield(Point{X: p.X + c.X, Y: p.Y + c.Y}) {
				return
			}
		}
	}
}

// Clone returns a copy of the piece that does not share its shape.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
