// Package ebiten runs a game session in an Ebiten window (or browser canvas under
// js/wasm).
package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render"
	"golang.org/x/image/font/basicfont"
)

// SidebarWidth is the space reserved right of the board for the HUD.
const SidebarWidth = 140

var (
	background = color.RGBA{0x11, 0x11, 0x11, 0xFF}
	hudColor   = color.RGBA{0xEE, 0xEE, 0xEE, 0xFF}
	alertColor = color.RGBA{0xFF, 0x44, 0x44, 0xFF}
)

// Canvas is a render.Surface and render.HUD drawing into an offscreen image. The game
// blits the image and HUD text to the screen in Draw.
type Canvas struct {
	image *ebiten.Image
	cols  int

	score, level int
	finalScore   int
	over         bool
}

func NewCanvas(rows, cols, blockSize int) *Canvas {
	return &Canvas{
		image: ebiten.NewImage(cols*blockSize, rows*blockSize),
		cols:  cols,
		level: 1,
	}
}

// Width and Height return the board size in pixels.
func (c *Canvas) Width() int  { return c.image.Bounds().Dx() }
func (c *Canvas) Height() int { return c.image.Bounds().Dy() }

func (c *Canvas) Clear() {
	c.image.Fill(background)
}

func (c *Canvas) DrawBlock(col, row int, id game.ColorID) {
	size := render.BlockSize(c.Width(), c.cols)
	x, y, s := float32(col*size), float32(row*size), float32(size)

	vector.DrawFilledRect(c.image, x, y, s, s, render.ColorOf(id), false)
	vector.StrokeRect(c.image, x, y, s, s, 1, render.Outline, false)
}

func (c *Canvas) SetScore(score int) { c.score = score }
func (c *Canvas) SetLevel(level int) { c.level = level }

func (c *Canvas) ShowGameOver(finalScore int) {
	c.over = true
	c.finalScore = finalScore
}

func (c *Canvas) HideGameOver() { c.over = false }

// HUDLines returns the sidebar text, one entry per line.
func (c *Canvas) HUDLines() []string {
	lines := []string{
		fmt.Sprintf("Score: %d", c.score),
		fmt.Sprintf("Level: %d", c.level),
	}
	if c.over {
		lines = append(lines, "", "GAME OVER", fmt.Sprintf("Final: %d", c.finalScore), "R to restart")
	}
	return lines
}

// Draw blits the board at the origin and the HUD beside it.
func (c *Canvas) Draw(screen *ebiten.Image) {
	screen.DrawImage(c.image, nil)

	x := c.Width() + 10
	for i, line := range c.HUDLines() {
		clr := hudColor
		if c.over && i >= 2 {
			clr = alertColor
		}
		text.Draw(screen, line, basicfont.Face7x13, x, 20+i*16, clr)
	}
}
