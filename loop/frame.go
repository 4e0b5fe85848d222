package loop

import (
	"time"

	"github.com/plus3/blockfall/game"
)

// Frame carries everything a system needs for one scheduler step.
type Frame struct {
	DeltaTime time.Duration
	Session   *game.Session
	Commands  *Commands
}

func newFrame(dt time.Duration, session *game.Session, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Session:   session,
		Commands:  commands,
	}
}
