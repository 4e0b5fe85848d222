// Package game implements the falling-block rules: board, pieces, collision, locking
// with row clears, and the session state machine driven by elapsed time.
package game

// ColorID is a 1-based palette index. Zero marks an empty cell.
type ColorID uint8

// Empty is the value of an unoccupied cell.
const Empty ColorID = 0

// Board is a fixed-size grid of locked cells addressed as (x, y) with y growing downwards.
type Board struct {
	rows  int
	cols  int
	cells [][]ColorID
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]ColorID, rows),
	}
	for y := range b.cells {
		b.cells[y] = make([]ColorID, cols)
	}
	return b
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// Cell returns the color stored at (x, y).
func (b *Board) Cell(x, y int) (ColorID, error) {
	if !b.InBounds(x, y) {
		return Empty, ErrOutOfBounds
	}
	return b.cells[y][x], nil
}

// SetCell stores a color at (x, y).
func (b *Board) SetCell(x, y int, id ColorID) error {
	if !b.InBounds(x, y) {
		return ErrOutOfBounds
	}
	b.cells[y][x] = id
	return nil
}

// ClearFullRows removes every completely filled row, shifts the rows above it down
// and refills the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]ColorID, 0, b.rows)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]ColorID, cleared, b.rows)
	for i := range fresh {
		fresh[i] = make([]ColorID, b.cols)
	}
	b.cells = append(fresh, kept...)
	return cleared
}

func rowFull(row []ColorID) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}

// RowFill returns how many cells of row y are occupied.
func (b *Board) RowFill(y int) int {
	if y < 0 || y >= b.rows {
		return 0
	}
	n := 0
	for _, c := range b.cells[y] {
		if c != Empty {
			n++
		}
	}
	return n
}

// Occupied returns the number of non-empty cells on the board.
func (b *Board) Occupied() int {
	n := 0
	for y := range b.cells {
		n += b.RowFill(y)
	}
	return n
}

// Reset empties every cell in place.
func (b *Board) Reset() {
	for _, row := range b.cells {
		clear(row)
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: make([][]ColorID, b.rows),
	}
	for y, row := range b.cells {
		c.cells[y] = append([]ColorID(nil), row...)
	}
	return c
}
