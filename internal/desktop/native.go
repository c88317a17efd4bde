package desktop

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var nativeInit = sync.OnceValue(clipboard.Init)

// NativeClipboard implements ClipboardSystem with golang.design/x/clipboard.
type NativeClipboard struct{}

var _ ClipboardSystem = NativeClipboard{}

// NewNativeClipboard initializes the native clipboard. It fails when no
// display is available (headless Linux, missing X11 libraries).
func NewNativeClipboard() (NativeClipboard, error) {
	if err := nativeInit(); err != nil {
		return NativeClipboard{}, fmt.Errorf("desktop: init native clipboard: %w", err)
	}
	return NativeClipboard{}, nil
}

// ReadText returns the clipboard's text; an empty or non-text clipboard
// reads as "".
func (NativeClipboard) ReadText() (string, error) {
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// WriteText replaces the clipboard's content with text.
func (NativeClipboard) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// NewClipboard returns the clipboard backend named by the config:
// "native" or "robotgo".
func NewClipboard(backend string) (ClipboardSystem, error) {
	switch backend {
	case "native":
		return NewNativeClipboard()
	case "robotgo", "":
		return Robot{}, nil
	default:
		return nil, fmt.Errorf("desktop: unknown clipboard backend %q (supported: robotgo, native)", backend)
	}
}
