package expireoption

import (
	"time"
)

// Clock is an interface for getting the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc is a function type that implements the Clock interface.
type ClockFunc func() time.Time

// Now calls the function.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock is the default clock that uses time.Now.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock is a clock that always returns the same time.
// It is intended for tests that need deterministic expiration behavior.
type FixedClock struct {
	// Time is the time returned by Now.
	Time time.Time
}

// Now returns the fixed time.
func (c *FixedClock) Now() time.Time {
	return c.Time
}
