// Package window finds the target editor window, brings it to the
// foreground, and checks that the pointer is resting over it.
package window

import "errors"

var (
	// ErrNotFound means no window matched any title hint. This is the
	// normal state while the editor is closed.
	ErrNotFound = errors.New("window: target window not found")
	// ErrActivation means the window could not be made foreground within
	// the attempt budget.
	ErrActivation = errors.New("window: activation failed")
	// ErrPointerOutside means the pointer is not over the target window.
	ErrPointerOutside = errors.New("window: pointer outside target window")
)
