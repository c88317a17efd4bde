package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/chaz8081/padfeed/internal/inject"
	"github.com/chaz8081/padfeed/internal/source"
	"github.com/chaz8081/padfeed/internal/window"
)

// State is a step of the injection cycle.
type State int

const (
	Idle State = iota
	Eligible
	Locating
	Activating
	ConfirmingFocus
	Fetching
	Delivering
	Committed
	Aborted
)

var stateNames = [...]string{
	Idle:            "idle",
	Eligible:        "eligible",
	Locating:        "locating",
	Activating:      "activating",
	ConfirmingFocus: "confirming-focus",
	Fetching:        "fetching",
	Delivering:      "delivering",
	Committed:       "committed",
	Aborted:         "aborted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// AbortError records the step at which a cycle was abandoned.
type AbortError struct {
	Stage State
	Err   error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("cycle aborted while %s: %v", e.Stage, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

// expected reports whether err is one of the routine, silent-retry
// outcomes: the editor is closed or the pointer is elsewhere.
func expected(err error) bool {
	return errors.Is(err, window.ErrNotFound) || errors.Is(err, window.ErrPointerOutside)
}

// category names the failure class of err for log output.
func category(err error) string {
	switch {
	case errors.Is(err, window.ErrNotFound):
		return "not-found"
	case errors.Is(err, window.ErrActivation):
		return "activation"
	case errors.Is(err, window.ErrPointerOutside):
		return "focus"
	case errors.Is(err, source.ErrFetch):
		return "fetch"
	case errors.Is(err, inject.ErrDelivery):
		return "delivery"
	default:
		return "fault"
	}
}

// Outcome summarizes one Tick.
type Outcome struct {
	// State is Idle when no cycle ran, otherwise Committed or Aborted.
	State State
	// Err is set for Aborted and is an *AbortError.
	Err error
	// Remaining is the wait left on the interval when State is Idle.
	Remaining time.Duration
	Paused    bool
}

// TimestampLine formats the header pasted before each content block.
func TimestampLine(t time.Time) string {
	return "[" + t.Format("2006-01-02 15:04:05") + "]\n"
}
