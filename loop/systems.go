package loop

import (
	"errors"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render"
)

// InputSystem applies the player actions queued for this frame.
type InputSystem struct {
	Applied  int64
	Rejected int64
}

func (s *InputSystem) Execute(frame *Frame) {
	for _, action := range frame.Commands.Actions() {
		err := action.Apply(frame.Session)
		switch {
		case err == nil:
			s.Applied++
		case errors.Is(err, game.ErrInvalidMove), errors.Is(err, game.ErrGameOver):
			s.Rejected++
		}
	}
}

// GravitySystem feeds elapsed frame time into the session's drop timer.
type GravitySystem struct {
	Drops int64
}

func (s *GravitySystem) Execute(frame *Frame) {
	if frame.Session.Tick(frame.DeltaTime) {
		s.Drops++
	}
}

// HUDSystem forwards session events to a HUD.
type HUDSystem struct {
	HUD render.HUD
}

func (s *HUDSystem) Execute(frame *Frame) {
	for _, event := range frame.Session.DrainEvents() {
		switch event.Kind {
		case game.EventLock, game.EventLevelUp:
			s.HUD.SetScore(event.Progress.Score)
			s.HUD.SetLevel(event.Progress.Level)
		case game.EventGameOver:
			s.HUD.ShowGameOver(event.Progress.Score)
		case game.EventReset:
			s.HUD.SetScore(event.Progress.Score)
			s.HUD.SetLevel(event.Progress.Level)
			s.HUD.HideGameOver()
		}
	}
}

// RenderSystem paints the session every frame, whether or not anything moved.
type RenderSystem struct {
	Surface render.Surface
}

func (s *RenderSystem) Execute(frame *Frame) {
	render.Draw(s.Surface, frame.Session.Snapshot())
	if p, ok := s.Surface.(render.Presenter); ok {
		p.Present()
	}
}
