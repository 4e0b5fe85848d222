package game

import "github.com/kamstrup/intmap"

// Stats accumulates per-session counters for the debug inspector and simulation reports.
type Stats struct {
	spawns *intmap.Map[Kind, int]
	clears *intmap.Map[int, int]
	locks  int
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{
		spawns: intmap.New[Kind, int](KindCount),
		clears: intmap.New[int, int](4),
	}
}

func (s *Stats) recordSpawn(k Kind) {
	n, _ := s.spawns.Get(k)
	s.spawns.Put(k, n+1)
}

func (s *Stats) recordLock(rows int) {
	s.locks++
	if rows == 0 {
		return
	}
	n, _ := s.clears.Get(rows)
	s.clears.Put(rows, n+1)
}

// Spawns returns how many pieces of kind k have been spawned.
func (s *Stats) Spawns(k Kind) int {
	n, _ := s.spawns.Get(k)
	return n
}

// Locks returns the number of pieces committed to the board.
func (s *Stats) Locks() int { return s.locks }

// Clears returns how many locks removed exactly rows rows.
func (s *Stats) Clears(rows int) int {
	n, _ := s.clears.Get(rows)
	return n
}

// ClearKinds returns the number of distinct clear sizes seen so far.
func (s *Stats) ClearKinds() int { return s.clears.Len() }

// Reset zeroes every counter.
func (s *Stats) Reset() {
	s.spawns.Clear()
	s.clears.Clear()
	s.locks = 0
}
