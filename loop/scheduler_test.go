package loop_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindSource struct {
	kind game.Kind
	next int
}

// IntN alternates between the configured kind and the first palette color.
func (s *kindSource) IntN(n int) int {
	s.next++
	if s.next%2 == 1 {
		return int(s.kind) % n
	}
	return 0
}

func newSession(t *testing.T, cfg game.Config, kind game.Kind) *game.Session {
	t.Helper()
	s, err := game.NewSession(cfg, game.WithSource(&kindSource{kind: kind}))
	require.NoError(t, err)
	return s
}

type traceSystem struct {
	name  string
	trace *[]string
	dts   []time.Duration
}

func (s *traceSystem) Execute(frame *loop.Frame) {
	*s.trace = append(*s.trace, s.name)
	s.dts = append(s.dts, frame.DeltaTime)
}

type frameCounter struct {
	frames atomic.Int64
}

func (s *frameCounter) Execute(frame *loop.Frame) {
	s.frames.Add(1)
}

type deferringSystem struct {
	trace *[]string
}

func (s *deferringSystem) Execute(frame *loop.Frame) {
	frame.Commands.Defer(func() {
		*s.trace = append(*s.trace, "deferred")
		frame.Commands.Defer(func() {
			*s.trace = append(*s.trace, "nested")
		})
	})
	*s.trace = append(*s.trace, "execute")
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var trace []string
		first := &traceSystem{name: "first", trace: &trace}
		second := &traceSystem{name: "second", trace: &trace}

		scheduler := loop.NewScheduler(newSession(t, game.DefaultConfig(), game.KindLine))
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(10 * time.Millisecond)
		scheduler.Once(20 * time.Millisecond)

		assert.Equal(t, []string{"first", "second", "first", "second"}, trace)
		assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, first.dts)
	})

	t.Run("deferred functions run after systems", func(t *testing.T) {
		var trace []string
		scheduler := loop.NewScheduler(newSession(t, game.DefaultConfig(), game.KindLine))
		scheduler.Register(&deferringSystem{trace: &trace})
		scheduler.Register(&traceSystem{name: "after", trace: &trace})

		scheduler.Once(0)
		assert.Equal(t, []string{"execute", "after", "deferred", "nested"}, trace)

		trace = nil
		scheduler.Once(0)
		assert.Equal(t, []string{"execute", "after", "deferred", "nested"}, trace)
	})

	t.Run("nil system panics", func(t *testing.T) {
		scheduler := loop.NewScheduler(newSession(t, game.DefaultConfig(), game.KindLine))
		assert.Panics(t, func() { scheduler.Register(nil) })
	})
}

func TestSchedulerStats(t *testing.T) {
	var trace []string
	scheduler := loop.NewScheduler(newSession(t, game.DefaultConfig(), game.KindLine))
	scheduler.Register(&traceSystem{name: "a", trace: &trace})
	scheduler.Register(&loop.GravitySystem{})

	for range 3 {
		scheduler.Once(time.Millisecond)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(3), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "traceSystem", stats.Systems[0].Name)
	assert.Equal(t, "GravitySystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.GreaterOrEqual(t, s.TotalDuration, s.MaxDuration)
	}
}

func TestGameScheduler(t *testing.T) {
	t.Run("gravity drops the piece after the interval", func(t *testing.T) {
		session := newSession(t, game.DefaultConfig(), game.KindLine)
		scheduler := loop.NewGameScheduler(session, nil, nil)

		scheduler.Once(session.Progress().DropInterval)
		assert.Equal(t, 0, session.Piece().Y)

		scheduler.Once(time.Millisecond)
		assert.Equal(t, 1, session.Piece().Y)
	})

	t.Run("submitted actions apply on the next frame", func(t *testing.T) {
		session := newSession(t, game.DefaultConfig(), game.KindLine)
		scheduler := loop.NewGameScheduler(session, nil, nil)

		scheduler.Submit(loop.ActionLeft)
		scheduler.Submit(loop.ActionDown)
		assert.Equal(t, 5, session.Piece().X)

		scheduler.Once(0)
		assert.Equal(t, 4, session.Piece().X)
		assert.Equal(t, 1, session.Piece().Y)
	})

	t.Run("rejected actions leave the session untouched", func(t *testing.T) {
		session := newSession(t, game.DefaultConfig(), game.KindLine)
		input := &loop.InputSystem{}
		scheduler := loop.NewScheduler(session)
		scheduler.Register(input)

		for range 10 {
			scheduler.Submit(loop.ActionLeft)
		}
		scheduler.Once(0)

		assert.Equal(t, 0, session.Piece().X)
		assert.Equal(t, int64(5), input.Applied)
		assert.Equal(t, int64(5), input.Rejected)
	})
}

// stackedSession returns a 4x4 session whose squares have filled the board.
func stackedSession(t *testing.T) *game.Session {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Rows, cfg.Cols = 4, 4
	session := newSession(t, cfg, game.KindSquare)
	for range 10 {
		if session.State() == game.StateGameOver {
			return session
		}
		_ = session.Move(0, 1)
	}
	require.Equal(t, game.StateGameOver, session.State())
	return session
}

func TestSchedulerRun(t *testing.T) {
	t.Run("returns when the context is cancelled", func(t *testing.T) {
		scheduler := loop.NewScheduler(newSession(t, game.DefaultConfig(), game.KindLine))
		counter := &frameCounter{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond, nil)
			close(done)
		}()

		assert.Eventually(t, func() bool { return counter.frames.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}
	})

	t.Run("ticking halts on game over and resumes after reset", func(t *testing.T) {
		session := stackedSession(t)
		scheduler := loop.NewGameScheduler(session, nil, nil)
		counter := &frameCounter{}
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		actions := make(chan loop.Action)
		go scheduler.Run(ctx, time.Millisecond, actions)

		assert.Eventually(t, func() bool { return counter.frames.Load() >= 1 }, time.Second, time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		halted := counter.frames.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, halted, counter.frames.Load())

		actions <- loop.ActionReset
		assert.Eventually(t, func() bool { return counter.frames.Load() > halted+3 }, time.Second, time.Millisecond)
	})
}
