// Package render defines the drawing and HUD collaborators of a game session and the
// shared logic that paints a session snapshot onto any surface.
package render

import (
	"image/color"

	"github.com/plus3/blockfall/game"
)

// Surface is a grid-addressable drawing target.
type Surface interface {
	Clear()
	DrawBlock(col, row int, id game.ColorID)
}

// Presenter is implemented by surfaces that buffer drawing until the frame is complete.
type Presenter interface {
	Present()
}

// HUD shows score, level and the game-over overlay.
type HUD interface {
	SetScore(score int)
	SetLevel(level int)
	ShowGameOver(finalScore int)
	HideGameOver()
}

// Palette maps ColorID n to Palette[n-1].
var Palette = []color.RGBA{
	{0xFF, 0x57, 0x33, 0xFF},
	{0x33, 0xFF, 0x57, 0xFF},
	{0x33, 0x57, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x33, 0xFF},
	{0xFF, 0x33, 0xFF, 0xFF},
	{0x33, 0xFF, 0xFF, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

// Outline is the border color drawn around every block.
var Outline = color.RGBA{0x00, 0x00, 0x00, 0xFF}

// ColorOf resolves a palette color. Ids past the palette wrap around; Empty is transparent.
func ColorOf(id game.ColorID) color.RGBA {
	if id == game.Empty {
		return color.RGBA{}
	}
	return Palette[(int(id)-1)%len(Palette)]
}

// BlockSize returns the side of one cell for a surface width pixels wide.
func BlockSize(width, cols int) int {
	if cols <= 0 {
		return 0
	}
	return width / cols
}

// Draw clears the surface and paints the locked cells followed by the active piece.
// Piece cells above the visible board are skipped.
func Draw(s Surface, snap game.Snapshot) {
	s.Clear()

	board := snap.Board
	for y := range board.Rows() {
		for x := range board.Cols() {
			id, err := board.Cell(x, y)
			if err != nil || id == game.Empty {
				continue
			}
			s.DrawBlock(x, y, id)
		}
	}

	for c := range snap.Piece.Cells() {
		if !board.InBounds(c.X, c.Y) {
			continue
		}
		s.DrawBlock(c.X, c.Y, snap.Piece.Color)
	}
}
