package runner

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Stats provides statistics about runner execution.
type Stats struct {
	OpCount         int
	TotalExecutions int64
	Accepted        int64
	Rejected        int64
	Ops             []OpStats
}

// OpStats provides execution statistics for a single operation: the gravity
// tick or one intent.
type OpStats struct {
	Name           string
	ExecutionCount int64
	Rejected       int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type opStatsInternal struct {
	name           string
	executionCount int64
	rejected       int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Operation 0 is the gravity tick; intent i lives at index i+1.
const tickOp = 0

func opIndex(in tetris.Intent) int { return int(in) + 1 }

// known reports whether in has a stats slot.
func known(in tetris.Intent) bool { return int(in) < len(tetris.Intents) }

func newOpStats() []*opStatsInternal {
	names := make([]string, 0, len(tetris.Intents)+1)
	names = append(names, "tick")
	for _, in := range tetris.Intents {
		names = append(names, in.String())
	}

	ops := make([]*opStatsInternal, len(names))
	for i, name := range names {
		ops[i] = &opStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		}
	}
	return ops
}

func (s *opStatsInternal) record(d time.Duration, ok bool) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if !ok {
		s.rejected++
	}

	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *opStatsInternal) export() OpStats {
	avg := time.Duration(0)
	minDuration := time.Duration(0)
	if s.executionCount > 0 {
		avg = s.totalDuration / time.Duration(s.executionCount)
		minDuration = s.minDuration
	}
	return OpStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		Rejected:       s.rejected,
		MinDuration:    minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avg,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}
