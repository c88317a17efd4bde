// Package ratelimit gates injection cycles: at most one cycle in flight, and
// no new cycle until the configured interval has passed since the last
// successful injection.
package ratelimit

import "time"

// DefaultInterval is the minimum spacing between successful injections.
const DefaultInterval = 10 * time.Second

// PollState is the only state carried across polling cycles.
type PollState struct {
	LastInjection time.Time // zero until the first success
	InFlight      bool
}

// Limiter owns a PollState. It is not safe for concurrent use; the
// controller drives it from a single goroutine.
type Limiter struct {
	interval time.Duration
	state    PollState
}

// New creates a Limiter. A non-positive interval falls back to
// DefaultInterval.
func New(interval time.Duration) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{interval: interval}
}

// Eligible reports whether a new cycle may start at now.
func (l *Limiter) Eligible(now time.Time) bool {
	return !l.state.InFlight && l.elapsed(now) >= l.interval
}

// Remaining returns how long until the interval gate opens, or zero.
func (l *Limiter) Remaining(now time.Time) time.Duration {
	if rem := l.interval - l.elapsed(now); rem > 0 {
		return rem
	}
	return 0
}

func (l *Limiter) elapsed(now time.Time) time.Duration {
	if l.state.LastInjection.IsZero() {
		return l.interval
	}
	return now.Sub(l.state.LastInjection)
}

// MarkInFlight records that a cycle has started.
func (l *Limiter) MarkInFlight() { l.state.InFlight = true }

// Commit records a successful injection at now and ends the cycle.
func (l *Limiter) Commit(now time.Time) {
	l.state.LastInjection = now
	l.state.InFlight = false
}

// Release ends the cycle without touching the last injection time.
func (l *Limiter) Release() { l.state.InFlight = false }

// Interval returns the configured interval.
func (l *Limiter) Interval() time.Duration { return l.interval }

// SetInterval changes the interval; the new value applies to the next
// Eligible call, measured from the existing last injection time.
func (l *Limiter) SetInterval(d time.Duration) {
	if d > 0 {
		l.interval = d
	}
}

// State returns a copy of the current PollState.
func (l *Limiter) State() PollState { return l.state }
