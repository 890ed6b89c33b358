// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package clock provides a mockable wall clock, extended with a scheduled
// callback that peer timers go through. Scheduled callbacks always run on
// the real wall clock, even when the clock is mocked.
package clock

import (
	"sync"
	"time"
)

// Clock is a mockable source of time and delayed callbacks. In production
// it wraps time.Now/time.AfterFunc; in tests it can be pinned to a fixed
// time and driven manually.
type Clock struct {
	mu     sync.Mutex
	time   time.Time
	mocked bool
}

// New returns a Clock backed by the real wall clock.
func New() *Clock {
	return &Clock{time: time.Now()}
}

// Now returns the current time: the mocked time if Set has been called, or
// time.Now() otherwise.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mocked {
		return c.time
	}
	return time.Now()
}

// Set pins the clock to t, switching it into mocked mode.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = t
	c.mocked = true
}

// Advance moves a mocked clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = c.time.Add(d)
}

// Real switches the clock back to wall-clock mode.
func (c *Clock) Real() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mocked = false
}

// AfterFunc schedules f to run after d. In wall-clock mode this is a thin
// wrapper over time.AfterFunc; in mocked mode it still fires on the real
// wall clock, since driving scheduled callbacks purely off Advance would
// require the caller to pump a fake timer wheel — tests instead use short
// real durations via config.TestParameters.
func (c *Clock) AfterFunc(d time.Duration, f func()) *time.Timer {
	return time.AfterFunc(d, f)
}
