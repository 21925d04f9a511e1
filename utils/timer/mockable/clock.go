// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"sync"
	"time"
)

// Clock wraps the wall clock so tests can pin and advance time.
// It is safe for concurrent use.
type Clock struct {
	mu    sync.RWMutex
	faked bool
	time  time.Time
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = true
	c.time = t
}

// Advance moves a pinned clock forward by d. An unpinned clock is pinned to
// the current wall time first.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.faked {
		c.faked = true
		c.time = time.Now()
	}
	c.time = c.time.Add(d)
	return c.time
}

// Sync releases the clock back to wall time.
func (c *Clock) Sync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faked = false
}

// Time returns the time on this clock, truncated to whole seconds so that
// block timestamps survive a round trip through unix seconds.
func (c *Clock) Time() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.faked {
		return c.time.Truncate(time.Second)
	}
	return time.Now().Truncate(time.Second)
}

// Unix returns the unix timestamp on this clock.
func (c *Clock) Unix() uint64 {
	return uint64(max(c.Time().Unix(), 0))
}
