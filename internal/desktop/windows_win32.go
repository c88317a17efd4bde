//go:build windows

package desktop

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

// win32Windows talks to user32 directly so that titles, iconic state and
// the foreground HWND come from the same source the user sees.
type win32Windows struct{}

// NewWindowSystem returns the platform WindowSystem.
func NewWindowSystem() WindowSystem {
	return win32Windows{}
}

// enumWindowsCallback is created once: syscall.NewCallback slots are a
// finite process-wide resource.
var (
	enumOnce     sync.Once
	enumCallback uintptr
)

type enumState struct {
	hwnds []windows.HWND
}

func enumWindowsProc(hwnd windows.HWND, lParam uintptr) uintptr {
	if hwnd == 0 || lParam == 0 {
		return 1
	}
	//nolint:govet // lParam is the *enumState passed to EnumWindows below.
	st := (*enumState)(unsafe.Pointer(lParam))
	if !windows.IsWindowVisible(hwnd) {
		return 1
	}
	st.hwnds = append(st.hwnds, hwnd)
	return 1
}

func (w win32Windows) Windows() ([]Window, error) {
	enumOnce.Do(func() {
		enumCallback = syscall.NewCallback(enumWindowsProc)
	})

	st := &enumState{}
	if err := windows.EnumWindows(enumCallback, unsafe.Pointer(st)); err != nil {
		return nil, fmt.Errorf("desktop: enum windows: %w", err)
	}

	out := make([]Window, 0, len(st.hwnds))
	for _, hwnd := range st.hwnds {
		title := windowText(hwnd)
		if title == "" {
			continue
		}
		rect, err := w.Bounds(Handle(hwnd))
		if err != nil {
			continue
		}
		out = append(out, Window{Title: title, Handle: Handle(hwnd), Bounds: rect})
	}
	return out, nil
}

func windowText(hwnd windows.HWND) string {
	buf := make([]uint16, 512)
	n, err := windows.GetWindowText(hwnd, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func (win32Windows) FindByTitle(title string) (Handle, error) {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, fmt.Errorf("desktop: encode title %q: %w", title, err)
	}
	return Handle(win.FindWindow(nil, name)), nil
}

func (win32Windows) IsMinimized(h Handle) (bool, error) {
	return win.IsIconic(win.HWND(h)), nil
}

func (win32Windows) Restore(h Handle) error {
	// ShowWindow returns the previous visibility, not success.
	win.ShowWindow(win.HWND(h), win.SW_RESTORE)
	return nil
}

func (win32Windows) SetForeground(h Handle) error {
	if !win.SetForegroundWindow(win.HWND(h)) {
		return fmt.Errorf("desktop: SetForegroundWindow(%#x) refused", uintptr(h))
	}
	return nil
}

func (win32Windows) Foreground() (Handle, error) {
	return Handle(win.GetForegroundWindow()), nil
}

func (win32Windows) Bounds(h Handle) (Rect, error) {
	var r win.RECT
	if !win.GetWindowRect(win.HWND(h), &r) {
		return Rect{}, fmt.Errorf("desktop: GetWindowRect(%#x) failed", uintptr(h))
	}
	return Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}, nil
}
