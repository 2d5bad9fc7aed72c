// Package clock abstracts one-shot timer creation so components that
// schedule delayed work (debounce, auto-dismiss) can be tested with a
// manual clock instead of real time.
package clock

import "time"

// Timer is a single pending callback. Stop reports whether the call
// was prevented from firing.
type Timer interface {
	Stop() bool
}

// Clock creates timers. The zero implementation is the system clock.
type Clock interface {
	// AfterFunc schedules fn to run once after d on its own goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// System returns a Clock backed by time.AfterFunc.
func System() Clock {
	return systemClock{}
}
