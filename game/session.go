package game

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// EventKind classifies a session event.
type EventKind int

const (
	EventLock EventKind = iota
	EventLevelUp
	EventGameOver
	EventReset
)

// Event describes a state change that the HUD or other observers care about.
// Progress is captured after the change was applied.
type Event struct {
	Kind     EventKind
	Rows     int
	Progress Progress
}

// Option configures a Session.
type Option func(*Session)

// WithSource replaces the seeded random source used for piece selection.
func WithSource(src Source) Option {
	return func(s *Session) {
		s.rng = src
	}
}

// WithLogger routes session logs to logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session owns one game: the board, the active piece, progress and the drop timer.
// It is not safe for concurrent use; a single driver must serialize every call.
type Session struct {
	cfg     Config
	rng     Source
	logger  *logrus.Logger
	catalog *Catalog
	stats   *Stats

	board       *Board
	piece       Piece
	progress    Progress
	state       State
	accumulator time.Duration
	generation  uint64
	events      []Event
}

// NewSession validates cfg and starts a running session.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		stats: NewStats(),
		board: NewBoard(cfg.Rows, cfg.Cols),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSource(cfg.Seed)
	}
	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetOutput(io.Discard)
	}
	s.catalog = NewCatalog(cfg.Colors, s.rng)

	s.start()
	return s, nil
}

func (s *Session) log() *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"generation": s.generation,
		"level":      s.progress.Level,
		"score":      s.progress.Score,
	})
}

func (s *Session) start() {
	s.progress = NewProgress(s.cfg)
	s.state = StateRunning
	s.accumulator = 0
	s.spawn()
}

func (s *Session) spawn() {
	s.piece = s.catalog.Spawn(s.cfg.Cols)
	s.stats.recordSpawn(s.piece.Kind)
	if !CanPlace(s.board, s.piece, 0, 0) {
		s.end("spawn blocked")
	}
}

func (s *Session) end(reason string) {
	s.state = StateGameOver
	s.emit(Event{Kind: EventGameOver})
	s.log().WithField("reason", reason).Info("game over")
}

func (s *Session) emit(e Event) {
	e.Progress = s.progress
	s.events = append(s.events, e)
}

// Reset discards the current game and starts a fresh one on an empty board.
func (s *Session) Reset() {
	s.generation++
	s.board.Reset()
	s.stats.Reset()
	s.start()
	s.emit(Event{Kind: EventReset})
	s.log().Info("session reset")
}

// Tick advances the drop timer by elapsed and issues one gravity step when the
// accumulated time exceeds the drop interval. It reports whether a step was issued.
func (s *Session) Tick(elapsed time.Duration) bool {
	if s.state != StateRunning {
		return false
	}

	s.accumulator += elapsed
	if s.accumulator <= s.progress.DropInterval {
		return false
	}

	s.accumulator = 0
	_ = s.Move(0, 1)
	return true
}

// Move translates the active piece by (dx, dy). A blocked downward move locks the
// piece instead; any other blocked move returns ErrInvalidMove without side effects.
func (s *Session) Move(dx, dy int) error {
	if s.state != StateRunning {
		return ErrGameOver
	}

	if CanPlace(s.board, s.piece, dx, dy) {
		s.piece.X += dx
		s.piece.Y += dy
		return nil
	}

	if dy > 0 {
		return s.lock()
	}
	return ErrInvalidMove
}

// Rotate turns the active piece clockwise when the rotated shape fits in place.
func (s *Session) Rotate() error {
	if s.state != StateRunning {
		return ErrGameOver
	}

	rotated := s.piece.Shape.Rotate()
	if !Fits(s.board, rotated, s.piece.X, s.piece.Y) {
		return ErrInvalidMove
	}
	s.piece.Shape = rotated
	return nil
}

func (s *Session) lock() error {
	rows, err := Lock(s.board, s.piece)
	if err != nil {
		s.end("locked above board")
		return err
	}

	s.stats.recordLock(rows)
	levelUp := s.progress.Apply(rows, s.cfg)
	s.emit(Event{Kind: EventLock, Rows: rows})
	s.log().WithFields(logrus.Fields{
		"kind": s.piece.Kind,
		"rows": rows,
	}).Debug("piece locked")

	if levelUp {
		s.emit(Event{Kind: EventLevelUp})
		s.log().WithField("interval", s.progress.DropInterval).Info("level up")
	}

	s.spawn()
	if s.state == StateGameOver {
		return ErrGameOver
	}
	return nil
}

// DrainEvents returns and clears the events queued since the previous call.
func (s *Session) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

func (s *Session) Config() Config         { return s.cfg }
func (s *Session) Board() *Board          { return s.board }
func (s *Session) Piece() Piece           { return s.piece }
func (s *Session) Progress() Progress     { return s.progress }
func (s *Session) State() State           { return s.state }
func (s *Session) Stats() *Stats          { return s.stats }
func (s *Session) Generation() uint64     { return s.generation }
func (s *Session) Pending() time.Duration { return s.accumulator }

// Snapshot is a detached copy of the session used for rendering.
type Snapshot struct {
	Board    *Board
	Piece    Piece
	Progress Progress
	State    State
}

// Snapshot copies the visible state of the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Board:    s.board.Clone(),
		Piece:    s.piece.Clone(),
		Progress: s.progress,
		State:    s.state,
	}
}
