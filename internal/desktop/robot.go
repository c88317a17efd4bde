package desktop

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robot implements InputSystem and ClipboardSystem with robotgo.
type Robot struct{}

// Compile-time interface satisfaction checks.
var (
	_ InputSystem     = Robot{}
	_ ClipboardSystem = Robot{}
)

// Cursor returns the current pointer location.
func (Robot) Cursor() (Point, error) {
	x, y := robotgo.Location()
	return Point{X: x, Y: y}, nil
}

// KeyTap taps key with the given modifiers held.
func (Robot) KeyTap(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("desktop: key tap %q: %w", key, err)
	}
	return nil
}

// ReadText returns the clipboard's text content.
func (Robot) ReadText() (string, error) {
	text, err := robotgo.ReadAll()
	if err != nil {
		return "", fmt.Errorf("desktop: read clipboard: %w", err)
	}
	return text, nil
}

// WriteText replaces the clipboard's content with text.
func (Robot) WriteText(text string) error {
	if err := robotgo.WriteAll(text); err != nil {
		return fmt.Errorf("desktop: write clipboard: %w", err)
	}
	return nil
}
