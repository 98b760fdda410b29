package fable

import (
	"math"
	"time"
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock reads the process's monotonic clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (SystemClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// DefaultFadeSpeed is the fade speed multiplier used in development, so
// fades fly by while a story is being written.
const DefaultFadeSpeed = 100

// ScaledClock multiplies every elapsed duration by Speed.
// Now is passed through unchanged.
type ScaledClock struct {
	Clock Clock
	Speed float64
}

// NewScaledClock wraps c. Speeds below or equal to zero mean 1.
func NewScaledClock(c Clock, speed float64) ScaledClock {
	if speed <= 0 {
		speed = 1
	}
	return ScaledClock{Clock: c, Speed: speed}
}

// Now returns the wrapped clock's current time.
func (s ScaledClock) Now() time.Time {
	return s.Clock.Now()
}

// Since returns the scaled elapsed time, saturating instead of overflowing.
func (s ScaledClock) Since(t time.Time) time.Duration {
	d := s.Clock.Since(t)
	scaled := float64(d) * s.Speed
	if scaled >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if scaled <= math.MinInt64 {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(scaled)
}
