package window

import (
	"log/slog"

	"github.com/chaz8081/padfeed/internal/desktop"
)

// FocusGuard checks that the pointer is over the target window before
// anything is typed, so a stray focus change cannot redirect input.
type FocusGuard struct {
	input desktop.InputSystem
}

// NewFocusGuard creates a FocusGuard reading the pointer from input.
func NewFocusGuard(input desktop.InputSystem) *FocusGuard {
	return &FocusGuard{input: input}
}

// PointerInside reports whether the pointer is strictly inside w's bounds,
// along with the observed position. An unreadable pointer counts as outside.
func (g *FocusGuard) PointerInside(w desktop.Window) (bool, desktop.Point) {
	p, err := g.input.Cursor()
	if err != nil {
		slog.Debug("[WINDOW] pointer read failed", "error", err)
		return false, p
	}
	return w.Bounds.Contains(p), p
}
