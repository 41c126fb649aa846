package main

import "time"

// gravityClock turns frame deltas into gravity ticks. The session sets its
// interval through OnInterval whenever the level changes.
type gravityClock struct {
	interval time.Duration
	elapsed  time.Duration
}

func (c *gravityClock) OnInterval(interval time.Duration) {
	c.interval = interval
	if c.elapsed > interval {
		c.elapsed = interval
	}
}

// Advance adds delta and reports whether a tick is due. At most one tick fires
// per call.
func (c *gravityClock) Advance(delta time.Duration) bool {
	if c.interval <= 0 {
		return false
	}
	c.elapsed += delta
	if c.elapsed < c.interval {
		return false
	}
	c.elapsed -= c.interval
	if c.elapsed >= c.interval {
		c.elapsed = 0
	}
	return true
}

func (c *gravityClock) Reset() {
	c.elapsed = 0
}
