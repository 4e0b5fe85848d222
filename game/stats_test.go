package game_test

import (
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	s := newSession(t, game.KindLine, game.KindSquare)
	assert.Equal(t, 1, s.Stats().Spawns(game.KindLine))
	assert.Equal(t, 0, s.Stats().Spawns(game.KindSquare))

	fillRow(t, s.Board(), 26, 3, 5, 6, 7, 8)
	require.NoError(t, dropToFloor(t, s))
	require.NoError(t, dropToFloor(t, s))

	stats := s.Stats()
	assert.Equal(t, 2, stats.Locks())
	assert.Equal(t, 2, stats.Spawns(game.KindLine))
	assert.Equal(t, 1, stats.Spawns(game.KindSquare))
	assert.Equal(t, 1, stats.Clears(1))
	assert.Equal(t, 0, stats.Clears(2))
	assert.Equal(t, 1, stats.ClearKinds())

	stats.Reset()
	assert.Equal(t, 0, stats.Locks())
	assert.Equal(t, 0, stats.Spawns(game.KindLine))
	assert.Equal(t, 0, stats.ClearKinds())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, game.DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*game.Config)
	}{
		{"narrow", func(c *game.Config) { c.Cols = 3 }},
		{"short", func(c *game.Config) { c.Rows = 0 }},
		{"no colors", func(c *game.Config) { c.Colors = 0 }},
		{"too many colors", func(c *game.Config) { c.Colors = 256 }},
		{"negative score", func(c *game.Config) { c.ScorePerLine = -1 }},
		{"zero lines per level", func(c *game.Config) { c.LinesPerLevel = 0 }},
		{"zero floor", func(c *game.Config) { c.MinDropInterval = 0 }},
		{"start below floor", func(c *game.Config) { c.InitialDropInterval = c.MinDropInterval / 2 }},
		{"negative step", func(c *game.Config) { c.DropIntervalStep = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := game.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), game.ErrInvalidConfig)
		})
	}
}
