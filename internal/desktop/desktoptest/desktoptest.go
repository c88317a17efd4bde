// Package desktoptest provides in-memory implementations of the desktop
// interfaces for tests.
package desktoptest

import (
	"errors"
	"sync"

	"github.com/chaz8081/padfeed/internal/desktop"
)

// Windows is a scriptable desktop.WindowSystem.
type Windows struct {
	mu sync.Mutex

	List      []desktop.Window
	ListErr   error
	Minimized map[desktop.Handle]bool

	// ForegroundFn, when set, decides what Foreground reports after
	// SetForeground calls; by default the last requested handle wins.
	ForegroundFn func(requested desktop.Handle) desktop.Handle
	// PanicOnFind makes FindByTitle panic for the first N calls.
	PanicOnFind int

	foreground   desktop.Handle
	FindCalls    int
	RestoreCalls []desktop.Handle
	FocusCalls   []desktop.Handle
}

var _ desktop.WindowSystem = (*Windows)(nil)

// NewWindows returns a fake listing wins.
func NewWindows(wins ...desktop.Window) *Windows {
	return &Windows{List: wins, Minimized: map[desktop.Handle]bool{}}
}

func (w *Windows) Windows() ([]desktop.Window, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ListErr != nil {
		return nil, w.ListErr
	}
	out := make([]desktop.Window, len(w.List))
	copy(out, w.List)
	return out, nil
}

func (w *Windows) FindByTitle(title string) (desktop.Handle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.FindCalls++
	if w.PanicOnFind > 0 {
		w.PanicOnFind--
		panic("desktoptest: FindByTitle fault")
	}
	for _, win := range w.List {
		if win.Title == title {
			return win.Handle, nil
		}
	}
	return 0, nil
}

func (w *Windows) IsMinimized(h desktop.Handle) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Minimized[h], nil
}

func (w *Windows) Restore(h desktop.Handle) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.RestoreCalls = append(w.RestoreCalls, h)
	delete(w.Minimized, h)
	return nil
}

func (w *Windows) SetForeground(h desktop.Handle) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.FocusCalls = append(w.FocusCalls, h)
	if w.ForegroundFn != nil {
		w.foreground = w.ForegroundFn(h)
	} else {
		w.foreground = h
	}
	return nil
}

func (w *Windows) Foreground() (desktop.Handle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.foreground, nil
}

func (w *Windows) Bounds(h desktop.Handle) (desktop.Rect, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, win := range w.List {
		if win.Handle == h {
			return win.Bounds, nil
		}
	}
	return desktop.Rect{}, errors.New("desktoptest: no such window")
}

// Clipboard is an in-memory desktop.ClipboardSystem that records every
// write in order.
type Clipboard struct {
	mu      sync.Mutex
	Text    string
	Writes  []string
	ReadErr error
	// NoText makes reads of an empty clipboard fail, the way robotgo reports
	// a clipboard holding nothing or only non-text data.
	NoText bool
	// WriteErrOn fails the write whose 1-based index matches.
	WriteErrOn int
}

var _ desktop.ClipboardSystem = (*Clipboard)(nil)

// NewClipboard returns a clipboard holding text.
func NewClipboard(text string) *Clipboard {
	return &Clipboard{Text: text}
}

// NewEmptyClipboard returns a clipboard with no text whose reads fail
// until something is written.
func NewEmptyClipboard() *Clipboard {
	return &Clipboard{NoText: true}
}

func (c *Clipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ReadErr != nil {
		return "", c.ReadErr
	}
	if c.NoText && c.Text == "" {
		return "", errors.New("desktoptest: no text on clipboard")
	}
	return c.Text, nil
}

func (c *Clipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.WriteErrOn > 0 && len(c.Writes)+1 == c.WriteErrOn {
		c.WriteErrOn = 0
		return errors.New("desktoptest: clipboard write failed")
	}
	c.Writes = append(c.Writes, text)
	c.Text = text
	return nil
}

// Tap is one recorded key press.
type Tap struct {
	Key       string
	Modifiers []string
	// Clipboard is the fake clipboard's content at the moment of the tap,
	// when Input.Clipboard is set.
	Clipboard string
}

// Input is a scriptable desktop.InputSystem.
type Input struct {
	mu        sync.Mutex
	Pointer   desktop.Point
	CursorErr error
	Taps      []Tap
	// Clipboard, when set, is sampled on every tap.
	Clipboard *Clipboard
	// FailKey makes taps of this key return an error.
	FailKey string
	// PanicKey makes taps of this key panic.
	PanicKey string
}

var _ desktop.InputSystem = (*Input)(nil)

func (in *Input) Cursor() (desktop.Point, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.Pointer, in.CursorErr
}

func (in *Input) KeyTap(key string, modifiers ...string) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	tap := Tap{Key: key, Modifiers: modifiers}
	if in.Clipboard != nil {
		tap.Clipboard, _ = in.Clipboard.ReadText()
	}
	in.Taps = append(in.Taps, tap)
	if key == in.PanicKey {
		panic("desktoptest: key tap fault")
	}
	if key == in.FailKey {
		return errors.New("desktoptest: key tap failed")
	}
	return nil
}
