// Package terminal renders a game session into a tcell screen and turns key presses
// into scheduler actions.
package terminal

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/render"
)

const cellWidth = 2

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Screen is a render.Surface, render.Presenter and render.HUD backed by tcell. Each
// board cell is two terminal columns wide.
type Screen struct {
	screen     tcell.Screen
	rows, cols int

	score, level int
	finalScore   int
	over         atomic.Bool
}

// New wraps an initialized tcell screen for a board of the given size.
func New(screen tcell.Screen, rows, cols int) *Screen {
	return &Screen{
		screen: screen,
		rows:   rows,
		cols:   cols,
		level:  1,
	}
}

// Clear blanks the screen and redraws the well border.
func (s *Screen) Clear() {
	s.screen.Clear()

	right := 1 + s.cols*cellWidth
	bottom := s.rows + 1
	for y := 0; y <= bottom; y++ {
		s.screen.SetContent(0, y, '│', nil, borderStyle)
		s.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := 0; x <= right; x++ {
		s.screen.SetContent(x, 0, '─', nil, borderStyle)
		s.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	s.screen.SetContent(0, 0, '┌', nil, borderStyle)
	s.screen.SetContent(right, 0, '┐', nil, borderStyle)
	s.screen.SetContent(0, bottom, '└', nil, borderStyle)
	s.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (s *Screen) DrawBlock(col, row int, id game.ColorID) {
	c := render.ColorOf(id)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))

	x, y := 1+col*cellWidth, 1+row
	for i := range cellWidth {
		s.screen.SetContent(x+i, y, '█', nil, style)
	}
}

// Present draws the HUD beside the well and shows the frame.
func (s *Screen) Present() {
	x := 3 + s.cols*cellWidth
	s.drawText(x, 1, textStyle, fmt.Sprintf("Score: %d", s.score))
	s.drawText(x, 2, textStyle, fmt.Sprintf("Level: %d", s.level))

	if s.over.Load() {
		s.drawText(x, 4, alertStyle, "GAME OVER")
		s.drawText(x, 5, textStyle, fmt.Sprintf("Final score: %d", s.finalScore))
		s.drawText(x, 6, textStyle, "R to restart")
	}

	s.drawText(x, max(s.rows+1, 8), borderStyle, "←→↓ move  ↑ rotate  q quit")
	s.screen.Show()
}

func (s *Screen) SetScore(score int) { s.score = score }
func (s *Screen) SetLevel(level int) { s.level = level }

func (s *Screen) ShowGameOver(finalScore int) {
	s.finalScore = finalScore
	s.over.Store(true)
}

func (s *Screen) HideGameOver() {
	s.over.Store(false)
}

// GameOver reports whether the game-over overlay is showing.
func (s *Screen) GameOver() bool {
	return s.over.Load()
}

func (s *Screen) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// KeyAction maps a key press to an action. Restart keys only count while the game is over.
func KeyAction(ev *tcell.EventKey, over bool) (loop.Action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return loop.ActionLeft, true
	case tcell.KeyRight:
		return loop.ActionRight, true
	case tcell.KeyDown:
		return loop.ActionDown, true
	case tcell.KeyUp:
		return loop.ActionRotate, true
	case tcell.KeyEnter:
		return loop.ActionReset, over
	case tcell.KeyRune:
		if r := ev.Rune(); over && (r == 'r' || r == 'R') {
			return loop.ActionReset, true
		}
	}
	return 0, false
}

// IsQuit reports whether the key press should end the program.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Run drives scheduler from the terminal until ctx is cancelled or the player quits.
// Key events are polled on their own goroutine and handed to the scheduler over a
// channel, so the session is only ever touched by scheduler.Run.
func Run(ctx context.Context, s *Screen, scheduler *loop.Scheduler, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan loop.Action, 16)
	go s.poll(ctx, cancel, actions)

	scheduler.Run(ctx, interval, actions)
}

func (s *Screen) poll(ctx context.Context, cancel context.CancelFunc, actions chan<- loop.Action) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			cancel()
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if IsQuit(ev) {
				cancel()
				return
			}
			action, ok := KeyAction(ev, s.over.Load())
			if !ok {
				continue
			}
			select {
			case actions <- action:
			case <-ctx.Done():
				return
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}
