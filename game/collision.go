package game

// Fits reports whether shape, anchored at (x, y), lies inside the board and over empty
// cells. Rows above the board (y < 0) count as free space; the sides and the floor are
// hard limits.
func Fits(board *Board, shape Shape, x, y int) bool {
	for c := range shape.Cells() {
		bx, by := x+c.X, y+c.Y
		if bx < 0 || bx >= board.cols || by >= board.rows {
			return false
		}
		if by >= 0 && board.cells[by][bx] != Empty {
			return false
		}
	}
	return true
}

// CanPlace reports whether piece, translated by (dx, dy), fits on the board.
func CanPlace(board *Board, piece Piece, dx, dy int) bool {
	return Fits(board, piece.Shape, piece.X+dx, piece.Y+dy)
}
