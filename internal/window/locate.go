package window

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/chaz8081/padfeed/internal/desktop"
)

// DefaultTitles are the editor titles tried in priority order.
var DefaultTitles = []string{"Notepad", "记事本"}

// Locator finds the target window by title.
type Locator struct {
	windows desktop.WindowSystem
	hints   []string
}

// NewLocator creates a Locator trying hints in the given order.
func NewLocator(windows desktop.WindowSystem, hints []string) *Locator {
	l := &Locator{windows: windows}
	l.SetHints(hints)
	return l
}

// SetHints replaces the title hints. Empty hints are dropped.
func (l *Locator) SetHints(hints []string) {
	out := make([]string, 0, len(hints))
	for _, h := range hints {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	l.hints = out
}

// Hints returns a copy of the active title hints.
func (l *Locator) Hints() []string {
	return append([]string(nil), l.hints...)
}

// matchers run in priority order; the first pass to produce a window wins.
var matchers = []func(title, hint string) bool{
	func(title, hint string) bool { return title == hint },
	strings.Contains,
	func(title, hint string) bool {
		return strings.Contains(strings.ToLower(title), strings.ToLower(hint))
	},
}

// Locate returns the highest-priority window matching a hint. Priority is
// match pass first, then hint order, then enumeration order, so the result
// does not depend on which window the platform happens to list first.
func (l *Locator) Locate() (desktop.Window, error) {
	wins, err := l.windows.Windows()
	if err != nil {
		slog.Debug("[WINDOW] enumeration failed", "error", err)
		return desktop.Window{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	for _, match := range matchers {
		for _, hint := range l.hints {
			for _, w := range wins {
				if match(w.Title, hint) {
					return w, nil
				}
			}
		}
	}
	return desktop.Window{}, ErrNotFound
}
