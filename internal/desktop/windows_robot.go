//go:build !windows

package desktop

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// robotWindows identifies windows by owning process id. robotgo exposes no
// minimized-state query outside Windows, so IsMinimized always reports
// false and Restore re-activates the process window instead.
type robotWindows struct{}

// NewWindowSystem returns the platform WindowSystem.
func NewWindowSystem() WindowSystem {
	return robotWindows{}
}

func (robotWindows) Windows() ([]Window, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("desktop: list processes: %w", err)
	}

	var out []Window
	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}
		out = append(out, Window{
			Title:  title,
			Handle: Handle(pid),
			Bounds: robotBounds(pid),
		})
	}
	return out, nil
}

func (w robotWindows) FindByTitle(title string) (Handle, error) {
	wins, err := w.Windows()
	if err != nil {
		return 0, err
	}
	for _, win := range wins {
		if win.Title == title {
			return win.Handle, nil
		}
	}
	return 0, nil
}

func (robotWindows) IsMinimized(Handle) (bool, error) {
	return false, nil
}

func (robotWindows) Restore(h Handle) error {
	return activatePid(h)
}

func (robotWindows) SetForeground(h Handle) error {
	return activatePid(h)
}

func (robotWindows) Foreground() (Handle, error) {
	return Handle(robotgo.GetPid()), nil
}

func (robotWindows) Bounds(h Handle) (Rect, error) {
	return robotBounds(int(h)), nil
}

func activatePid(h Handle) error {
	if err := robotgo.ActivePid(int(h)); err != nil {
		return fmt.Errorf("desktop: activate pid %d: %w", h, err)
	}
	return nil
}

func robotBounds(pid int) Rect {
	x, y, w, h := robotgo.GetBounds(pid)
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}
