package viewport

import "time"

// Clock abstracts timer creation so the debounce window can be driven
// by a fake in tests.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// NewRealClock returns the wall-clock implementation used in production.
func NewRealClock() Clock {
	return realClock{}
}
