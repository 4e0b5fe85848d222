package game

import "errors"

var (
	// ErrInvalidMove is returned when a move or rotation is blocked and nothing changed.
	ErrInvalidMove = errors.New("game: invalid move")

	// ErrGameOver is returned once the session has ended, and by Lock when a piece
	// would be committed above the visible board.
	ErrGameOver = errors.New("game: game over")

	// ErrOutOfBounds is returned for direct board access outside the grid.
	ErrOutOfBounds = errors.New("game: cell out of bounds")

	// ErrInvalidConfig wraps every Config validation failure.
	ErrInvalidConfig = errors.New("game: invalid config")
)
