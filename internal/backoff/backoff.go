// Package backoff provides the failure-driven wait schedule used by the
// entitlement synchronizer between poll attempts.
//
// # Schedule semantics
//
// The delay starts at the configured base interval and is multiplied by the
// growth factor once per consecutive failure, capped at the maximum. Any
// success resets the schedule to the base interval.
//
// # What this package must NOT do
//
//   - Sleep or own timers; it only computes durations.
//   - Be imported outside the goEntitle module.
package backoff

import "time"

// Schedule computes poll delays. It is not safe for concurrent use; the
// synchronizer drives it from a single goroutine.
type Schedule struct {
	base     time.Duration
	max      time.Duration
	factor   float64
	failures int
}

// New creates a schedule. A non-positive max disables the cap; a factor
// below 1 disables growth.
func New(base, max time.Duration, factor float64) *Schedule {
	if factor < 1 {
		factor = 1
	}
	return &Schedule{
		base:   base,
		max:    max,
		factor: factor,
	}
}

// Next returns the wait before the next attempt given the failures
// recorded so far.
func (s *Schedule) Next() time.Duration {
	d := s.base
	for i := 0; i < s.failures; i++ {
		d = time.Duration(float64(d) * s.factor)
		if s.max > 0 && d >= s.max {
			return s.max
		}
	}
	if s.max > 0 && d > s.max {
		return s.max
	}
	return d
}

// Failure records one consecutive failure.
func (s *Schedule) Failure() {
	s.failures++
}

// Reset clears the failure streak after a success.
func (s *Schedule) Reset() {
	s.failures = 0
}

// Failures reports the current consecutive failure streak.
func (s *Schedule) Failures() int {
	return s.failures
}
