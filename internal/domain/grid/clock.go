package grid

import (
	"time"
)

// Timer is a pending deferred call that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time and timer creation so the debounce machinery
// is testable without real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the wall-clock implementation.
func SystemClock() Clock {
	return systemClock{}
}
