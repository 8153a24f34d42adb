package visit

import "time"

// Clock provides time for deterministic testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// DefaultClock reads the system clock.
var DefaultClock Clock = realClock{}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }
