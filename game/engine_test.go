package game_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	t.Run("writes every cell", func(t *testing.T) {
		b := game.NewBoard(10, 10)
		p := game.Piece{Shape: game.KindT.Template(), X: 4, Y: 8, Color: 3}

		rows, err := game.Lock(b, p)
		require.NoError(t, err)
		assert.Equal(t, 0, rows)
		for c := range p.Cells() {
			assert.Equal(t, game.ColorID(3), cellAt(t, b, c.X, c.Y))
		}
		assert.Equal(t, 4, b.Occupied())
	})

	t.Run("line completes a row", func(t *testing.T) {
		b := game.NewBoard(27, 15)
		fillRow(t, b, 26, 2, 4, 5, 6, 7)
		line := game.Piece{Shape: game.KindLine.Template(), X: 4, Y: 26, Color: 1}

		rows, err := game.Lock(b, line)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
		assert.Equal(t, 0, b.Occupied())

		progress := game.NewProgress(game.DefaultConfig())
		progress.Apply(rows, game.DefaultConfig())
		assert.Equal(t, 100, progress.Score)
	})

	t.Run("above the board writes nothing", func(t *testing.T) {
		b := game.NewBoard(10, 10)
		p := game.Piece{Shape: game.KindSquare.Template(), X: 0, Y: -1, Color: 2}

		rows, err := game.Lock(b, p)
		assert.ErrorIs(t, err, game.ErrGameOver)
		assert.Equal(t, 0, rows)
		assert.Equal(t, 0, b.Occupied())
	})
}

func TestProgressApply(t *testing.T) {
	cfg := game.DefaultConfig()

	t.Run("no rows", func(t *testing.T) {
		p := game.NewProgress(cfg)
		assert.False(t, p.Apply(0, cfg))
		assert.Equal(t, game.NewProgress(cfg), p)
	})

	t.Run("score is flat per line", func(t *testing.T) {
		p := game.NewProgress(cfg)
		for rows := 1; rows <= 4; rows++ {
			before := p.Score
			p.Apply(rows, cfg)
			assert.Equal(t, before+100*rows, p.Score)
		}
	})

	t.Run("level up after five lines", func(t *testing.T) {
		p := game.NewProgress(cfg)
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, time.Second, p.DropInterval)

		for range 4 {
			assert.False(t, p.Apply(1, cfg))
		}
		assert.True(t, p.Apply(1, cfg))
		assert.Equal(t, 5, p.Lines)
		assert.Equal(t, 2, p.Level)
		assert.Equal(t, 950*time.Millisecond, p.DropInterval)
	})

	t.Run("one level per lock", func(t *testing.T) {
		p := game.NewProgress(cfg)
		p.Lines = 14
		assert.True(t, p.Apply(4, cfg))
		assert.Equal(t, 18, p.Lines)
		assert.Equal(t, 2, p.Level)
	})

	t.Run("interval floor", func(t *testing.T) {
		p := game.NewProgress(cfg)
		for range 200 {
			p.Apply(4, cfg)
			require.GreaterOrEqual(t, p.DropInterval, 200*time.Millisecond)
		}
		assert.Equal(t, 200*time.Millisecond, p.DropInterval)
	})
}
