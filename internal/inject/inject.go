// Package inject delivers text into the focused application by swapping it
// onto the clipboard, pasting, and putting the previous clipboard back.
package inject

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/desktop"
)

var (
	// ErrDelivery is wrapped by every delivery failure.
	ErrDelivery = errors.New("inject: delivery failed")
	// ErrEmptyInput is returned for empty text; the clipboard is untouched.
	ErrEmptyInput = fmt.Errorf("%w: empty input", ErrDelivery)
)

// Options configures paste timing and the paste shortcut.
type Options struct {
	PropagateDelay time.Duration // after writing the clipboard, before pasting
	PasteDelay     time.Duration // after pasting, before restoring
	PasteModifier  string        // "ctrl" or "cmd"
}

// DefaultOptions returns the standard timings with the platform's paste
// modifier.
func DefaultOptions() Options {
	return Options{
		PropagateDelay: 200 * time.Millisecond,
		PasteDelay:     200 * time.Millisecond,
		PasteModifier:  DefaultPasteModifier(),
	}
}

// DefaultPasteModifier returns "cmd" on macOS and "ctrl" elsewhere.
func DefaultPasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}

// Transfer pastes text through the clipboard.
type Transfer struct {
	clipboard desktop.ClipboardSystem
	input     desktop.InputSystem
	clock     clock.Clock
	opts      Options
}

// NewTransfer creates a Transfer. An empty PasteModifier takes the platform
// default.
func NewTransfer(cb desktop.ClipboardSystem, input desktop.InputSystem, clk clock.Clock, opts Options) *Transfer {
	if opts.PasteModifier == "" {
		opts.PasteModifier = DefaultPasteModifier()
	}
	return &Transfer{clipboard: cb, input: input, clock: clk, opts: opts}
}

// snapshot is the clipboard content held for one paste.
type snapshot struct {
	text string
}

// Deliver pastes text into the focused application. The clipboard content
// from before the call is restored on every return path, including a panic
// raised by the paste itself.
func (t *Transfer) Deliver(text string) (err error) {
	if text == "" {
		return ErrEmptyInput
	}

	// Backends report a clipboard with no text (empty, an image, files) as
	// a read error; that snapshot is the empty string.
	prev, err := t.clipboard.ReadText()
	if err != nil {
		slog.Warn("[INJECT] clipboard has no readable text, will restore it empty", "error", err)
		prev = ""
	}
	snap := snapshot{text: prev}
	defer t.restore(snap)

	if err := t.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("%w: write clipboard: %v", ErrDelivery, err)
	}
	t.clock.Sleep(t.opts.PropagateDelay)

	if err := t.input.KeyTap("v", t.opts.PasteModifier); err != nil {
		return fmt.Errorf("%w: paste: %v", ErrDelivery, err)
	}
	t.clock.Sleep(t.opts.PasteDelay)

	slog.Debug("[INJECT] pasted", "chars", len([]rune(text)))
	return nil
}

// restore puts the snapshot back. A failure here is logged only: the paste
// has already happened, and failing the delivery would paste it again on
// the next cycle.
func (t *Transfer) restore(snap snapshot) {
	if err := t.clipboard.WriteText(snap.text); err != nil {
		slog.Warn("[INJECT] failed to restore clipboard", "error", err)
	}
}

// PressLineBreaks taps enter n times with delay between taps.
func (t *Transfer) PressLineBreaks(n int, delay time.Duration) error {
	for i := 0; i < n; i++ {
		if i > 0 {
			t.clock.Sleep(delay)
		}
		if err := t.input.KeyTap("enter"); err != nil {
			return fmt.Errorf("%w: line break: %v", ErrDelivery, err)
		}
	}
	return nil
}
