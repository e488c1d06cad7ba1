package testutils

import (
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/search"
)

// ManualClock is a search.Clock that fires timers only when advanced. Fired
// callbacks run on their own goroutine, as time.AfterFunc does.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
	wg     sync.WaitGroup
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) search.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward and starts every timer that became due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []func()
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		c.wg.Add(1)
		go func(f func()) {
			defer c.wg.Done()
			f()
		}(f)
	}
}

// Pending counts timers that have neither fired nor been stopped.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Wait blocks until every fired callback has returned.
func (c *ManualClock) Wait() {
	c.wg.Wait()
}
