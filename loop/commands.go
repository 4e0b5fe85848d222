package loop

import (
	"errors"

	"github.com/plus3/blockfall/game"
)

// Action is a discrete player request.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionDown
	ActionRotate
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionDown:
		return "down"
	case ActionRotate:
		return "rotate"
	case ActionReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Apply performs the action on session. Rejected moves are reported as
// game.ErrInvalidMove and leave the session unchanged.
func (a Action) Apply(session *game.Session) error {
	switch a {
	case ActionLeft:
		return session.Move(-1, 0)
	case ActionRight:
		return session.Move(1, 0)
	case ActionDown:
		return session.Move(0, 1)
	case ActionRotate:
		return session.Rotate()
	case ActionReset:
		session.Reset()
		return nil
	default:
		return errors.New("loop: unknown action " + a.String())
	}
}

// Commands buffers work for a frame: player actions applied by the InputSystem and
// deferred functions that run after every system has executed.
type Commands struct {
	actions []Action
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Push queues a player action.
func (c *Commands) Push(a Action) {
	c.actions = append(c.actions, a)
}

// Actions returns the queued actions and empties the queue.
func (c *Commands) Actions() []Action {
	actions := c.actions
	c.actions = nil
	return actions
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs deferred functions in the order they were queued and resets the buffer.
// Functions deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
