// Package desktop abstracts the operating-system surfaces padfeed drives:
// top-level windows, the clipboard, and synthetic input.
//
// Platform adapters:
//
//	robot.go          : robotgo key taps, pointer and clipboard (all platforms)
//	native.go         : golang.design/x/clipboard as an alternative clipboard
//	windows_win32.go  : Win32 window enumeration and focus via lxn/win
//	windows_robot.go  : robotgo process windows on macOS and Linux
package desktop

import "fmt"

// Handle is an opaque platform window identifier (an HWND on Windows, a
// process id elsewhere). Zero means no window.
type Handle uintptr

// Point is a screen coordinate.
type Point struct {
	X, Y int
}

// Rect is a window's bounding rectangle in screen coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Contains reports whether p lies strictly inside r. Points on an edge
// are outside.
func (r Rect) Contains(p Point) bool {
	return r.Left < p.X && p.X < r.Right && r.Top < p.Y && p.Y < r.Bottom
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Window identifies one top-level window.
type Window struct {
	Title  string
	Handle Handle
	Bounds Rect
}

// WindowSystem queries and manipulates top-level windows.
type WindowSystem interface {
	// Windows lists visible top-level windows with non-empty titles in
	// the platform's enumeration order.
	Windows() ([]Window, error)
	// FindByTitle resolves a live handle for an exact title. It returns
	// a zero handle and no error when no such window exists.
	FindByTitle(title string) (Handle, error)
	IsMinimized(h Handle) (bool, error)
	Restore(h Handle) error
	SetForeground(h Handle) error
	// Foreground returns the handle the OS reports as focused.
	Foreground() (Handle, error)
	Bounds(h Handle) (Rect, error)
}

// ClipboardSystem reads and writes plain text on the system clipboard.
type ClipboardSystem interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// InputSystem reads the pointer and synthesizes key presses.
type InputSystem interface {
	Cursor() (Point, error)
	// KeyTap presses and releases key while holding modifiers, using
	// robotgo key names ("v", "enter", "ctrl", "cmd").
	KeyTap(key string, modifiers ...string) error
}
