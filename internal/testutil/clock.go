package testutil

import (
	"sync"
	"time"
)

// StubClock returns a controlled time. Safe for concurrent use.
// With a non-zero step, every call to Now advances the clock by step
// after reading it, so consecutive timestamps are distinct.
type StubClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStubClock creates a StubClock fixed at the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// NewTickingClock creates a StubClock starting at t that moves forward by
// step on every read.
func NewTickingClock(t time.Time, step time.Duration) *StubClock {
	return &StubClock{now: t, step: step}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
