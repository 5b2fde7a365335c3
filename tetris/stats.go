package tetris

import "github.com/kamstrup/intmap"

// Stats accumulates per-game counters. It is reset with the game.
type Stats struct {
	dealt     *intmap.Map[int, int]
	clears    *intmap.Map[int, int]
	total     int
	locks     int
	holds     int
	hardDrops int
}

func newStats() *Stats {
	return &Stats{
		dealt:  intmap.New[int, int](8),
		clears: intmap.New[int, int](8),
	}
}

func (s *Stats) reset() {
	s.dealt.Clear()
	s.clears.Clear()
	s.total = 0
	s.locks = 0
	s.holds = 0
	s.hardDrops = 0
}

func (s *Stats) recordDealt(k Kind) {
	n, _ := s.dealt.Get(int(k))
	s.dealt.Put(int(k), n+1)
	s.total++
}

func (s *Stats) recordLock(cleared int) {
	s.locks++
	if cleared > 0 {
		n, _ := s.clears.Get(cleared)
		s.clears.Put(cleared, n+1)
	}
}

// Dealt returns how many pieces of kind left the lookahead.
func (s *Stats) Dealt(k Kind) int {
	n, _ := s.dealt.Get(int(k))
	return n
}

// TotalDealt returns the number of pieces dealt across all kinds.
func (s *Stats) TotalDealt() int { return s.total }

// Clears returns how many locks removed exactly n rows.
func (s *Stats) Clears(n int) int {
	c, _ := s.clears.Get(n)
	return c
}

func (s *Stats) Locks() int     { return s.locks }
func (s *Stats) Holds() int     { return s.holds }
func (s *Stats) HardDrops() int { return s.hardDrops }
