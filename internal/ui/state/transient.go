// Package state holds small UI state helpers shared by front ends.
package state

import (
	"sync"
	"time"

	"github.com/avencia/servio/internal/clock"
)

// DefaultTransientDuration is how long a transient flag stays shown
// when no explicit duration is given.
const DefaultTransientDuration = 3 * time.Second

// TransientFlagConfig holds construction options for a TransientFlag.
type TransientFlagConfig struct {
	// DefaultDuration defaults to DefaultTransientDuration when <= 0.
	DefaultDuration time.Duration
	// Clock defaults to the system clock.
	Clock clock.Clock
	// OnChange, when set, is invoked after every flag transition. It runs
	// outside the lock and may be called from the hide-timer goroutine.
	OnChange func()
}

// TransientFlag is a boolean UI affordance that auto-dismisses after a
// timeout. At most one pending hide timer exists at a time: showing again
// replaces the previous timer (last-writer-wins), it never stacks.
type TransientFlag struct {
	defaultDur time.Duration
	clk        clock.Clock
	onChange   func()

	mu        sync.Mutex
	shown     bool
	hideTimer clock.Timer
	gen       uint64
	closed    bool
}

// NewTransientFlag creates a transient flag, initially hidden.
func NewTransientFlag(cfg TransientFlagConfig) *TransientFlag {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = DefaultTransientDuration
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}

	return &TransientFlag{
		defaultDur: cfg.DefaultDuration,
		clk:        cfg.Clock,
		onChange:   cfg.OnChange,
	}
}

// Show sets the flag for the default duration.
func (f *TransientFlag) Show() {
	f.ShowFor(f.defaultDur)
}

// ShowFor sets the flag immediately and schedules its dismissal after d,
// cancelling any previously pending dismissal.
func (f *TransientFlag) ShowFor(d time.Duration) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	f.shown = true
	f.stopTimerLocked()
	f.gen++
	gen := f.gen
	f.hideTimer = f.clk.AfterFunc(d, func() {
		f.timerFired(gen)
	})
	f.mu.Unlock()
	f.notify()
}

// Hide clears the flag immediately and cancels any pending dismissal.
// Idempotent when already hidden.
func (f *TransientFlag) Hide() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	changed := f.shown
	f.shown = false
	f.stopTimerLocked()
	f.gen++
	f.mu.Unlock()

	if changed {
		f.notify()
	}
}

// Shown reports the current flag value.
func (f *TransientFlag) Shown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shown
}

// Close cancels any pending dismissal; all later operations are no-ops.
func (f *TransientFlag) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	f.closed = true
	f.stopTimerLocked()
	f.mu.Unlock()
}

// timerFired dismisses the flag. The generation stamp rejects a timer
// that was replaced while its callback was already in flight, so a
// superseded timer can never dismiss a newer show.
func (f *TransientFlag) timerFired(gen uint64) {
	f.mu.Lock()
	if f.closed || gen != f.gen {
		f.mu.Unlock()
		return
	}

	f.shown = false
	f.hideTimer = nil
	f.mu.Unlock()
	f.notify()
}

// stopTimerLocked cancels the pending hide timer, if any.
// Callers must hold f.mu.
func (f *TransientFlag) stopTimerLocked() {
	if f.hideTimer != nil {
		f.hideTimer.Stop()
		f.hideTimer = nil
	}
}

func (f *TransientFlag) notify() {
	if f.onChange != nil {
		f.onChange()
	}
}
