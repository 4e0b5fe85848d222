package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// Overlay is drawn on top of the game, typically a Dear ImGui backend.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
}

var bindings = []struct {
	key    ebiten.Key
	action loop.Action
}{
	{ebiten.KeyArrowLeft, loop.ActionLeft},
	{ebiten.KeyArrowRight, loop.ActionRight},
	{ebiten.KeyArrowDown, loop.ActionDown},
	{ebiten.KeyArrowUp, loop.ActionRotate},
}

// KeyActions returns the actions for the keys pressed this frame. Restart keys only
// count while the game is over.
func KeyActions(justPressed func(ebiten.Key) bool, over bool) []loop.Action {
	var actions []loop.Action
	for _, b := range bindings {
		if justPressed(b.key) {
			actions = append(actions, b.action)
		}
	}
	if over && (justPressed(ebiten.KeyR) || justPressed(ebiten.KeyEnter)) {
		actions = append(actions, loop.ActionReset)
	}
	return actions
}

// Game implements ebiten.Game. Every Update steps the scheduler once with the real
// elapsed time, so all session mutation happens on ebiten's update goroutine.
type Game struct {
	scheduler     *loop.Scheduler
	canvas        *Canvas
	overlay       Overlay
	wantsKeyboard func() bool
	lastUpdate    time.Time
}

// Option configures a Game.
type Option func(*Game)

// WithOverlay draws o over the game and brackets each update with its frame hooks.
// wantsKeyboard, when not nil, suppresses game input while it returns true.
func WithOverlay(o Overlay, wantsKeyboard func() bool) Option {
	return func(g *Game) {
		g.overlay = o
		g.wantsKeyboard = wantsKeyboard
	}
}

func NewGame(scheduler *loop.Scheduler, canvas *Canvas, opts ...Option) *Game {
	g := &Game{
		scheduler: scheduler,
		canvas:    canvas,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Size returns the window size needed for the board and sidebar.
func (g *Game) Size() (int, int) {
	return g.canvas.Width() + SidebarWidth, g.canvas.Height()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	var dt time.Duration
	if !g.lastUpdate.IsZero() {
		dt = now.Sub(g.lastUpdate)
	}
	g.lastUpdate = now

	if g.overlay != nil {
		g.overlay.BeginFrame()
	}

	if g.wantsKeyboard == nil || !g.wantsKeyboard() {
		over := g.scheduler.Session().State() == game.StateGameOver
		for _, action := range KeyActions(inpututil.IsKeyJustPressed, over) {
			g.scheduler.Submit(action)
		}
	}

	g.scheduler.Once(dt)

	if g.overlay != nil {
		g.overlay.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.canvas.Draw(screen)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.Size()
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	if g.overlay == nil {
		ebiten.SetWindowSize(g.Size())
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
