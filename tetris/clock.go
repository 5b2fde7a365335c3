package tetris

import "time"

// TickSource is the periodic gravity signal. A Game owns exactly one and is its
// only caller: Start replaces any previous arming, Stop cancels it. Both must
// be idempotent.
type TickSource interface {
	Start(interval time.Duration)
	Stop()
}

// FrameClock is a TickSource running on simulated time, for hosts that already
// have a frame loop and for tests.
type FrameClock struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
	gen      uint64
	starts   int
}

func (c *FrameClock) Start(interval time.Duration) {
	c.gen++
	c.starts++
	c.interval = interval
	c.elapsed = 0
	c.running = interval > 0
}

func (c *FrameClock) Stop() {
	c.gen++
	c.elapsed = 0
	c.running = false
}

// Advance moves simulated time forward by dt and calls fire once per elapsed
// interval. If fire restarts or stops the clock, ticks still owed to the old
// arming are dropped. It returns the number of ticks fired.
func (c *FrameClock) Advance(dt time.Duration, fire func()) int {
	if !c.running {
		return 0
	}
	c.elapsed += dt
	gen := c.gen
	fired := 0
	for c.running && c.gen == gen && c.elapsed >= c.interval {
		c.elapsed -= c.interval
		fired++
		fire()
	}
	return fired
}

func (c *FrameClock) Running() bool           { return c.running }
func (c *FrameClock) Interval() time.Duration { return c.interval }

// Starts counts how many times the clock has been armed.
func (c *FrameClock) Starts() int { return c.starts }
