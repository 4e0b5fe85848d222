// Package loop drives a game session: a scheduler runs registered systems once per
// frame, either stepped by a host (Once) or on its own ticker (Run).
package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/render"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler owns the only code path that mutates its session.
type Scheduler struct {
	session     *game.Session
	pending     *Commands
	systems     []System
	systemStats []*systemStatsInternal
	frames      int64
}

// NewScheduler creates a scheduler for the given session.
func NewScheduler(session *game.Session) *Scheduler {
	return &Scheduler{
		session: session,
		pending: newCommands(),
		systems: make([]System, 0),
	}
}

// NewGameScheduler registers the standard systems in frame order:
// input, gravity, HUD, render.
func NewGameScheduler(session *game.Session, surface render.Surface, hud render.HUD) *Scheduler {
	s := NewScheduler(session)
	s.Register(&InputSystem{})
	s.Register(&GravitySystem{})
	if hud != nil {
		s.Register(&HUDSystem{HUD: hud})
	}
	if surface != nil {
		s.Register(&RenderSystem{Surface: surface})
	}
	return s
}

// Session returns the session driven by the scheduler.
func (s *Scheduler) Session() *game.Session {
	return s.session
}

// Register appends a system to the frame.
func (s *Scheduler) Register(system System) {
	if system == nil {
		panic("loop: cannot register a nil system")
	}
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Submit queues an action for the next frame. It must be called from the goroutine
// that steps the scheduler.
func (s *Scheduler) Submit(a Action) {
	s.pending.Push(a)
}

// Once executes all registered systems once with the given delta time, then runs
// the functions they deferred.
func (s *Scheduler) Once(dt time.Duration) {
	frame := newFrame(dt, s.session, s.pending)
	s.frames++

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush()
}

// Run steps the scheduler on a ticker until the context is cancelled. Actions read
// from the channel are applied immediately in their own zero-length frame, so input
// and gravity never run concurrently. Ticking stops while the session is over and
// restarts with a fresh time base after a reset.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, actions <-chan Action) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ticks := ticker.C
	lastTime := time.Now()
	generation := s.session.Generation()

	for {
		select {
		case <-ctx.Done():
			return
		case action, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			s.Submit(action)
			s.Once(0)
		case now := <-ticks:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
		}

		if gen := s.session.Generation(); gen != generation {
			generation = gen
			ticker.Reset(interval)
			ticks = ticker.C
			lastTime = time.Now()
		}

		if ticks != nil && s.session.State() == game.StateGameOver {
			ticker.Stop()
			ticks = nil
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
