package mock

import (
	"time"

	"github.com/fwojciec/fable"
)

// Compile-time interface verification.
var _ fable.Clock = (*Clock)(nil)

// Clock is a manually advanced fable.Clock.
type Clock struct {
	T time.Time
}

// NewClock returns a clock stopped at an arbitrary fixed instant.
func NewClock() *Clock {
	return &Clock{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	return c.T
}

func (c *Clock) Since(t time.Time) time.Duration {
	return c.T.Sub(t)
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}
