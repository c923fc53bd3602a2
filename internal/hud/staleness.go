package hud

import "time"

// Clock maintains the "time since snapshot" display. Restarting it for a new
// snapshot invalidates the previous tick chain, so exactly one chain is ever
// live per display.
type Clock struct {
	seq     TaskSeq
	base    int
	started time.Time
}

// Restart arms the clock with the snapshot's base age and returns the
// generation for the tick chain. A negative base is floored at zero.
func (c *Clock) Restart(baseAge int, now time.Time) Generation {
	if baseAge < 0 {
		baseAge = 0
	}
	c.base = baseAge
	c.started = now
	return c.seq.Next()
}

// Stop disarms the clock; the display shows the unknown placeholder.
// Stopping an already-stopped clock is a no-op.
func (c *Clock) Stop() {
	c.seq.Cancel()
}

// Live reports whether the tick stamped g should still drive the display.
func (c *Clock) Live(g Generation) bool {
	return c.seq.Live(g)
}

// Age returns the current age in whole seconds. ok is false when the clock
// is stopped and the label must show the unknown placeholder instead of a
// stale number.
func (c *Clock) Age(now time.Time) (age int, ok bool) {
	if !c.seq.active {
		return 0, false
	}
	age = c.base + int(now.Sub(c.started)/time.Second)
	if age < 0 {
		age = 0
	}
	return age, true
}
