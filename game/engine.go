package game

import "time"

// Lock commits piece into the board and clears any completed rows.
//
// A piece with any occupied cell above the visible board ends the game: Lock returns
// ErrGameOver and leaves the board untouched. Callers must only lock pieces that
// CanPlace accepted at their current position.
func Lock(board *Board, piece Piece) (int, error) {
	for c := range piece.Cells() {
		if c.Y < 0 {
			return 0, ErrGameOver
		}
	}

	for c := range piece.Cells() {
		if err := board.SetCell(c.X, c.Y, piece.Color); err != nil {
			return 0, err
		}
	}

	return board.ClearFullRows(), nil
}

// Progress tracks score, level and falling speed for a session.
type Progress struct {
	Score        int
	Level        int
	Lines        int
	DropInterval time.Duration
}

// NewProgress returns the level one progress for cfg.
func NewProgress(cfg Config) Progress {
	return Progress{
		Level:        1,
		DropInterval: cfg.InitialDropInterval,
	}
}

// Apply credits rows cleared by a single lock. The level threshold is checked once
// per call, so a multi-row clear advances at most one level.
func (p *Progress) Apply(rows int, cfg Config) bool {
	if rows <= 0 {
		return false
	}

	p.Score += rows * cfg.ScorePerLine
	p.Lines += rows

	if p.Lines < p.Level*cfg.LinesPerLevel {
		return false
	}

	p.Level++
	p.DropInterval = max(cfg.MinDropInterval, p.DropInterval-cfg.DropIntervalStep)
	return true
}
