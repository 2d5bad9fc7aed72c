// Package clocktest provides a manually advanced clock for tests.
package clocktest

import (
	"sort"
	"sync"
	"time"

	"github.com/avencia/servio/internal/clock"
)

// Manual is a clock.Clock whose time only moves when Advance is called.
// Timers fire synchronously inside Advance, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

// NewManual creates a manual clock starting at an arbitrary fixed instant.
func NewManual() *Manual {
	return &Manual{now: time.Unix(1700000000, 0)}
}

type manualTimer struct {
	clk      *Manual
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func (t *manualTimer) Stop() bool {
	t.clk.mu.Lock()
	defer t.clk.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements clock.Clock.
func (m *Manual) AfterFunc(d time.Duration, fn func()) clock.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clk: m, deadline: m.now.Add(d), fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves time forward and fires every due timer exactly once.
// Callbacks run without the clock lock held, so they may schedule new
// timers; a timer scheduled during Advance fires only if its deadline
// still falls within the advanced window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		t := m.nextDueLocked(target)
		if t == nil {
			break
		}
		m.now = t.deadline
		t.fired = true
		fn := t.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) nextDueLocked(target time.Time) *manualTimer {
	sort.SliceStable(m.timers, func(i, j int) bool {
		return m.timers[i].deadline.Before(m.timers[j].deadline)
	})
	for _, t := range m.timers {
		if t.fired || t.stopped {
			continue
		}
		if !t.deadline.After(target) {
			return t
		}
	}
	return nil
}
