package game

import (
	"fmt"
	"time"
)

// Config holds the board geometry and progression rules for a session.
type Config struct {
	Rows   int
	Cols   int
	Colors int

	ScorePerLine  int
	LinesPerLevel int

	InitialDropInterval time.Duration
	DropIntervalStep    time.Duration
	MinDropInterval     time.Duration

	// Seed feeds the default random source. Zero means time-based.
	Seed uint64
}

// DefaultConfig returns the classic 27x15 board with a seven color palette.
func DefaultConfig() Config {
	return Config{
		Rows:                27,
		Cols:                15,
		Colors:              7,
		ScorePerLine:        100,
		LinesPerLevel:       5,
		InitialDropInterval: 1000 * time.Millisecond,
		DropIntervalStep:    50 * time.Millisecond,
		MinDropInterval:     200 * time.Millisecond,
	}
}

// Validate reports the first setting that cannot produce a playable session.
func (c Config) Validate() error {
	switch {
	case c.Cols < 4:
		return fmt.Errorf("%w: need at least 4 columns, got %d", ErrInvalidConfig, c.Cols)
	case c.Rows < 4:
		return fmt.Errorf("%w: need at least 4 rows, got %d", ErrInvalidConfig, c.Rows)
	case c.Colors < 1 || c.Colors > 255:
		return fmt.Errorf("%w: colors must be in [1,255], got %d", ErrInvalidConfig, c.Colors)
	case c.ScorePerLine < 0:
		return fmt.Errorf("%w: negative score per line", ErrInvalidConfig)
	case c.LinesPerLevel < 1:
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidConfig)
	case c.MinDropInterval <= 0:
		return fmt.Errorf("%w: min drop interval must be positive", ErrInvalidConfig)
	case c.InitialDropInterval < c.MinDropInterval:
		return fmt.Errorf("%w: initial drop interval %s below floor %s",
			ErrInvalidConfig, c.InitialDropInterval, c.MinDropInterval)
	case c.DropIntervalStep < 0:
		return fmt.Errorf("%w: negative drop interval step", ErrInvalidConfig)
	}
	return nil
}
