// Package testutil provides shared test helpers, chiefly a controllable
// clock for window, debounce, and timer logic.
package testutil

import (
	"sync"
	"time"

	"github.com/spendsignal/spendsignal/internal/common"
)

// FakeClock implements common.Clock with manually advanced time. Timers
// armed via AfterFunc fire during Advance, in arming order.
type FakeClock struct {
	now    time.Time
	timers []*fakeTimer
	mu     sync.Mutex
}

// NewFakeClock creates a clock frozen at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the clock's current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward and fires any timers that came due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.deadline.After(now) {
			due = append(due, t)
		} else if !t.stopped {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	for _, t := range due {
		t.fire()
	}
}

// AfterFunc arms a one-shot timer that calls f once the clock has advanced
// past d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) common.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{deadline: c.now.Add(d), f: f, clock: c}
	c.timers = append(c.timers, t)
	return t
}

type fakeTimer struct {
	clock    *FakeClock
	f        func()
	deadline time.Time
	stopped  bool
	fired    bool
}

func (t *fakeTimer) fire() {
	t.clock.mu.Lock()
	if t.stopped || t.fired {
		t.clock.mu.Unlock()
		return
	}
	t.fired = true
	f := t.f
	t.clock.mu.Unlock()
	f()
}

// Stop prevents the timer from firing. It reports whether the timer was
// still pending.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
