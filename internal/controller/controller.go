// Package controller runs the polling loop: on each tick it decides whether
// an injection is due, and if so walks one cycle of locate, activate,
// confirm pointer, fetch, and deliver.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/ratelimit"
	"github.com/chaz8081/padfeed/internal/source"
	"github.com/chaz8081/padfeed/internal/window"
)

// Locator finds the target window.
type Locator interface {
	Locate() (desktop.Window, error)
	SetHints(hints []string)
}

// Activator brings a window to the foreground.
type Activator interface {
	Activate(w desktop.Window) (desktop.Window, error)
}

// FocusGuard checks the pointer position against a window.
type FocusGuard interface {
	PointerInside(w desktop.Window) (bool, desktop.Point)
}

// Deliverer pastes text and presses line breaks.
type Deliverer interface {
	Deliver(text string) error
	PressLineBreaks(n int, delay time.Duration) error
}

// Notifier is told about each committed injection.
type Notifier interface {
	Notify(title, body string) error
}

// Deps are the collaborators of a Controller. Notifier may be nil.
type Deps struct {
	Limiter   *ratelimit.Limiter
	Locator   Locator
	Activator Activator
	Guard     FocusGuard
	Source    source.Source
	Transfer  Deliverer
	Clock     clock.Clock
	Notifier  Notifier
}

// Options configures loop cadence and delivery layout.
type Options struct {
	Tick           time.Duration // sleep between ticks (default 1s)
	SettleDelay    time.Duration // after each paste (default 500ms)
	LineBreaks     int           // enter presses after the content (default 2)
	LineBreakDelay time.Duration // between enter presses (default 200ms)

	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

// DefaultOptions returns the standard cadence.
func DefaultOptions() Options {
	return Options{
		Tick:           time.Second,
		SettleDelay:    500 * time.Millisecond,
		LineBreaks:     2,
		LineBreakDelay: 200 * time.Millisecond,
	}
}

// Settings are the values that may change while running.
type Settings struct {
	Interval time.Duration
	Titles   []string
}

// Controller owns the poll state and drives the injection state machine.
// Tick and Run must be called from a single goroutine; SetPaused and
// Reconfigure are safe from any goroutine.
type Controller struct {
	deps  Deps
	opts  Options
	state State

	paused  atomic.Bool
	pending chan Settings
}

// New creates a Controller. Zero option fields take defaults; a negative
// LineBreaks disables line breaks.
func New(deps Deps, opts Options) *Controller {
	def := DefaultOptions()
	if opts.Tick <= 0 {
		opts.Tick = def.Tick
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = def.SettleDelay
	}
	if opts.LineBreaks == 0 {
		opts.LineBreaks = def.LineBreaks
	} else if opts.LineBreaks < 0 {
		opts.LineBreaks = 0
	}
	if opts.LineBreakDelay < 0 {
		opts.LineBreakDelay = def.LineBreakDelay
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	return &Controller{
		deps:    deps,
		opts:    opts,
		pending: make(chan Settings, 1),
	}
}

// State returns the current state. Between ticks it is always Idle.
func (c *Controller) State() State { return c.state }

// PollState returns a copy of the limiter's state.
func (c *Controller) PollState() ratelimit.PollState { return c.deps.Limiter.State() }

// SetPaused stops or resumes starting new cycles.
func (c *Controller) SetPaused(paused bool) {
	if c.paused.Swap(paused) != paused {
		slog.Info("[CTRL] pause state changed", "paused", paused)
	}
}

// Paused reports whether injection is paused.
func (c *Controller) Paused() bool { return c.paused.Load() }

// Reconfigure queues new settings for the next tick. A newer call replaces
// settings not yet applied.
func (c *Controller) Reconfigure(s Settings) {
	for {
		select {
		case c.pending <- s:
			return
		default:
		}
		select {
		case <-c.pending:
		default:
		}
	}
}

func (c *Controller) applyPending() {
	select {
	case s := <-c.pending:
		if s.Interval > 0 {
			c.deps.Limiter.SetInterval(s.Interval)
		}
		if len(s.Titles) > 0 {
			c.deps.Locator.SetHints(s.Titles)
		}
		slog.Info("[CTRL] settings applied", "interval", c.deps.Limiter.Interval(), "titles", s.Titles)
	default:
	}
}

// Run ticks until ctx is cancelled, waiting one tick period after each
// pass whatever its outcome.
func (c *Controller) Run(ctx context.Context) error {
	slog.Info("[CTRL] polling", "interval", c.deps.Limiter.Interval(), "tick", c.opts.Tick)
	for {
		if ctx.Err() != nil {
			slog.Info("[CTRL] stopped")
			return nil
		}
		c.Tick(ctx)

		select {
		case <-ctx.Done():
			slog.Info("[CTRL] stopped")
			return nil
		case <-c.deps.Clock.After(c.opts.Tick):
		}
	}
}

// Tick runs one pass of the state machine. It never panics: a fault from
// any collaborator aborts the cycle and clears the in-flight flag.
func (c *Controller) Tick(ctx context.Context) (out Outcome) {
	c.applyPending()

	if c.paused.Load() {
		return Outcome{State: Idle, Paused: true}
	}

	now := c.deps.Clock.Now()
	if !c.deps.Limiter.Eligible(now) {
		rem := c.deps.Limiter.Remaining(now)
		slog.Info("[CTRL] waiting", "remaining", rem.Round(100*time.Millisecond))
		return Outcome{State: Idle, Remaining: rem}
	}

	c.transition(Eligible)
	defer func() {
		if r := recover(); r != nil {
			out = c.abort(&AbortError{Stage: c.state, Err: fmt.Errorf("unexpected fault: %v", r)})
		}
	}()

	c.transition(Locating)
	c.deps.Limiter.MarkInFlight()

	item, abortErr := c.cycle(ctx, now)
	if abortErr != nil {
		return c.abort(abortErr)
	}

	c.deps.Limiter.Commit(now)
	c.transition(Committed)
	c.transition(Idle)
	c.notify(item)
	return Outcome{State: Committed}
}

// cycle walks Locating through Delivering and returns an *AbortError for
// the first step that fails.
func (c *Controller) cycle(ctx context.Context, now time.Time) (source.ContentItem, *AbortError) {
	target, err := c.deps.Locator.Locate()
	if err != nil {
		return source.ContentItem{}, &AbortError{Stage: Locating, Err: err}
	}
	slog.Info("[CTRL] target located", "title", target.Title, "bounds", target.Bounds.String())

	c.transition(Activating)
	active, err := c.deps.Activator.Activate(target)
	if err != nil {
		return source.ContentItem{}, &AbortError{Stage: Activating, Err: err}
	}

	c.transition(ConfirmingFocus)
	inside, p := c.deps.Guard.PointerInside(active)
	slog.Info("[CTRL] pointer", "x", p.X, "y", p.Y, "bounds", active.Bounds.String(), "inside", inside)
	if !inside {
		return source.ContentItem{}, &AbortError{Stage: ConfirmingFocus, Err: window.ErrPointerOutside}
	}

	c.transition(Fetching)
	item, err := c.deps.Source.Fetch(ctx)
	if err != nil {
		return source.ContentItem{}, &AbortError{Stage: Fetching, Err: err}
	}

	c.transition(Delivering)
	if err := c.deliver(item); err != nil {
		return source.ContentItem{}, &AbortError{Stage: Delivering, Err: err}
	}

	slog.Info("[CTRL] injected", "title", active.Title, "at", now.Format(time.TimeOnly))
	return item, nil
}

// deliver pastes the timestamp line, then the content, then separates the
// entry from the next one with line breaks.
func (c *Controller) deliver(item source.ContentItem) error {
	if err := c.deps.Transfer.Deliver(TimestampLine(item.RequestedAt)); err != nil {
		return err
	}
	c.deps.Clock.Sleep(c.opts.SettleDelay)

	if err := c.deps.Transfer.Deliver(item.Text); err != nil {
		return err
	}
	c.deps.Clock.Sleep(c.opts.SettleDelay)

	return c.deps.Transfer.PressLineBreaks(c.opts.LineBreaks, c.opts.LineBreakDelay)
}

// notify runs after the commit; a failing or panicking notifier is logged
// and cannot undo the injection.
func (c *Controller) notify(item source.ContentItem) {
	if c.deps.Notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("[CTRL] notifier fault", "panic", r)
		}
	}()
	if err := c.deps.Notifier.Notify("padfeed", item.Text); err != nil {
		slog.Warn("[CTRL] notification failed", "error", err)
	}
}

// abort releases the in-flight flag without touching the last injection
// time, so the interval keeps counting from the previous success.
func (c *Controller) abort(err *AbortError) Outcome {
	c.deps.Limiter.Release()
	c.transition(Aborted)
	c.transition(Idle)

	attrs := []any{"stage", err.Stage.String(), "reason", category(err.Err), "error", err.Err}
	if expected(err.Err) {
		slog.Info("[CTRL] cycle skipped", attrs...)
	} else {
		slog.Warn("[CTRL] cycle aborted", attrs...)
	}
	return Outcome{State: Aborted, Err: err}
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to
	if c.opts.OnTransition != nil {
		c.opts.OnTransition(from, to)
	}
}
