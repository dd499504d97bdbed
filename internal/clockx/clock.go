// Package clockx abstracts the wall clock so time-dependent logic (event
// windows, record timestamps) can be tested deterministically.
package clockx

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock backed by time.Now.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a Clock that always reports the same instant. Useful in tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}
