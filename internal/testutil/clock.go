package testutil

import (
	"sync"
	"time"
)

// FixedClock provides a deterministic wall clock for tests.
//
// Each call to Now returns the configured start time advanced by one step
// per prior call, so successive results carry strictly increasing
// executed_at stamps without the test sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewFixedClock creates a clock that starts at start and advances by step
// on every call to Now. A zero step freezes the clock.
func NewFixedClock(start time.Time, step time.Duration) *FixedClock {
	return &FixedClock{next: start, step: step}
}

// Now returns the current fixed time and advances the clock by one step.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

// Reset rewinds the clock to start. After Reset, the next call to Now
// returns start again. Used for test reuse.
func (c *FixedClock) Reset(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = start
}
