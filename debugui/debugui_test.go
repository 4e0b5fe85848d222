package debugui

import (
	"testing"

	"github.com/plus3/blockfall/game"
	"github.com/stretchr/testify/assert"
)

func TestNextLevelFraction(t *testing.T) {
	cfg := game.DefaultConfig()

	assert.Equal(t, float32(0), NextLevelFraction(game.Progress{Lines: 0}, cfg))
	assert.Equal(t, float32(0.4), NextLevelFraction(game.Progress{Lines: 2}, cfg))
	assert.Equal(t, float32(0), NextLevelFraction(game.Progress{Lines: 5}, cfg))
	assert.Equal(t, float32(0.2), NextLevelFraction(game.Progress{Lines: 6}, cfg))

	cfg.LinesPerLevel = 0
	assert.Equal(t, float32(0), NextLevelFraction(game.Progress{Lines: 3}, cfg))
}

func TestPerformanceStats(t *testing.T) {
	ps := NewPerformanceStats(4)
	assert.Equal(t, float32(0), ps.Average())

	ps.Record(4)
	ps.Record(8)
	assert.Equal(t, float32(3), ps.Average())

	ps.Record(4)
	ps.Record(4)
	ps.Record(12)
	assert.Equal(t, float32(7), ps.Average())
	assert.Equal(t, 1, ps.frameIndex)
}
