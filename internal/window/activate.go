package window

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/desktop"
)

// ActivatorOptions configures activation retries and settle delays.
type ActivatorOptions struct {
	Attempts    int           // full restore+focus+verify sequences (default 3)
	RetryDelay  time.Duration // pause between attempts (default 1s)
	SettleDelay time.Duration // pause after restore and after focus (default 500ms)
}

// DefaultActivatorOptions returns the standard timings.
func DefaultActivatorOptions() ActivatorOptions {
	return ActivatorOptions{
		Attempts:    3,
		RetryDelay:  time.Second,
		SettleDelay: 500 * time.Millisecond,
	}
}

// Activator brings a located window to the foreground.
type Activator struct {
	windows desktop.WindowSystem
	clock   clock.Clock
	opts    ActivatorOptions
}

// NewActivator creates an Activator. Zero option fields take defaults.
func NewActivator(windows desktop.WindowSystem, clk clock.Clock, opts ActivatorOptions) *Activator {
	def := DefaultActivatorOptions()
	if opts.Attempts <= 0 {
		opts.Attempts = def.Attempts
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = def.RetryDelay
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = def.SettleDelay
	}
	return &Activator{windows: windows, clock: clk, opts: opts}
}

// Activate focuses w and returns it with the live handle and current
// bounds. It fails with ErrActivation once every attempt has failed;
// errors and panics from individual attempts are retried, not returned.
func (a *Activator) Activate(w desktop.Window) (desktop.Window, error) {
	var lastErr error
	for attempt := 1; attempt <= a.opts.Attempts; attempt++ {
		active, err := a.attempt(w)
		if err == nil {
			slog.Info("[WINDOW] activated", "title", w.Title, "attempt", attempt)
			return active, nil
		}
		lastErr = err
		slog.Debug("[WINDOW] activation attempt failed",
			"title", w.Title, "attempt", attempt, "of", a.opts.Attempts, "error", err)

		if attempt < a.opts.Attempts {
			a.clock.Sleep(a.opts.RetryDelay)
		}
	}
	return desktop.Window{}, fmt.Errorf("%w after %d attempts: %v", ErrActivation, a.opts.Attempts, lastErr)
}

// attempt runs one resolve/restore/focus/verify sequence.
func (a *Activator) attempt(w desktop.Window) (active desktop.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("platform fault: %v", r)
		}
	}()

	h, err := a.windows.FindByTitle(w.Title)
	if err != nil {
		return desktop.Window{}, fmt.Errorf("resolve handle: %w", err)
	}
	if h == 0 {
		return desktop.Window{}, fmt.Errorf("no live window titled %q", w.Title)
	}

	minimized, err := a.windows.IsMinimized(h)
	if err != nil {
		return desktop.Window{}, fmt.Errorf("query minimized: %w", err)
	}
	if minimized {
		if err := a.windows.Restore(h); err != nil {
			return desktop.Window{}, fmt.Errorf("restore: %w", err)
		}
		a.clock.Sleep(a.opts.SettleDelay)
	}

	if err := a.windows.SetForeground(h); err != nil {
		return desktop.Window{}, fmt.Errorf("set foreground: %w", err)
	}
	a.clock.Sleep(a.opts.SettleDelay)

	fg, err := a.windows.Foreground()
	if err != nil {
		return desktop.Window{}, fmt.Errorf("read foreground: %w", err)
	}
	if fg != h {
		return desktop.Window{}, fmt.Errorf("foreground is %#x, want %#x", uintptr(fg), uintptr(h))
	}

	bounds, err := a.windows.Bounds(h)
	if err != nil {
		// Focus is established; fall back to the bounds seen at locate time.
		bounds = w.Bounds
	}
	return desktop.Window{Title: w.Title, Handle: h, Bounds: bounds}, nil
}
