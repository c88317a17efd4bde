package window

import (
	"errors"
	"testing"
	"time"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/desktop/desktoptest"
)

func newActivator(ws *desktoptest.Windows) (*Activator, *clock.Fake) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return NewActivator(ws, clk, DefaultActivatorOptions()), clk
}

func TestActivateFirstAttempt(t *testing.T) {
	target := win("Notepad", 42)
	ws := desktoptest.NewWindows(target)
	act, clk := newActivator(ws)

	got, err := act.Activate(target)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if got.Handle != 42 {
		t.Errorf("Activate() handle = %d, want 42", got.Handle)
	}
	if len(ws.FocusCalls) != 1 {
		t.Errorf("SetForeground calls = %d, want 1", len(ws.FocusCalls))
	}
	if len(ws.RestoreCalls) != 0 {
		t.Errorf("Restore calls = %v, want none for a visible window", ws.RestoreCalls)
	}
	// One settle after focus, no retry delay.
	if sleeps := clk.Sleeps(); len(sleeps) != 1 || sleeps[0] != 500*time.Millisecond {
		t.Errorf("sleeps = %v, want [500ms]", sleeps)
	}
}

func TestActivateRestoresMinimized(t *testing.T) {
	target := win("Notepad", 42)
	ws := desktoptest.NewWindows(target)
	ws.Minimized[42] = true
	act, clk := newActivator(ws)

	if _, err := act.Activate(target); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if len(ws.RestoreCalls) != 1 || ws.RestoreCalls[0] != 42 {
		t.Errorf("Restore calls = %v, want [42]", ws.RestoreCalls)
	}
	if sleeps := clk.Sleeps(); len(sleeps) != 2 {
		t.Errorf("sleeps = %v, want settle after restore and after focus", sleeps)
	}
}

func TestActivateRefreshesBounds(t *testing.T) {
	located := desktop.Window{Title: "Notepad", Handle: 42, Bounds: desktop.Rect{Left: -32000, Top: -32000, Right: -31840, Bottom: -31970}}
	live := desktop.Window{Title: "Notepad", Handle: 42, Bounds: desktop.Rect{Left: 10, Top: 10, Right: 900, Bottom: 700}}
	ws := desktoptest.NewWindows(live)
	act, _ := newActivator(ws)

	got, err := act.Activate(located)
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if got.Bounds != live.Bounds {
		t.Errorf("Activate() bounds = %v, want %v", got.Bounds, live.Bounds)
	}
}

func TestActivateFailsAfterThreeAttempts(t *testing.T) {
	target := win("Notepad", 42)
	ws := desktoptest.NewWindows(target)
	// Another window keeps stealing focus.
	ws.ForegroundFn = func(desktop.Handle) desktop.Handle { return 7 }
	act, clk := newActivator(ws)

	_, err := act.Activate(target)
	if !errors.Is(err, ErrActivation) {
		t.Fatalf("Activate() error = %v, want ErrActivation", err)
	}
	if len(ws.FocusCalls) != 3 {
		t.Errorf("SetForeground calls = %d, want 3", len(ws.FocusCalls))
	}

	// 3 focus settles plus 2 retry delays between attempts.
	var retries int
	for _, d := range clk.Sleeps() {
		if d == time.Second {
			retries++
		}
	}
	if retries != 2 {
		t.Errorf("retry delays = %d, want 2 (sleeps %v)", retries, clk.Sleeps())
	}
}

func TestActivateWindowGone(t *testing.T) {
	target := win("Notepad", 42)
	ws := desktoptest.NewWindows() // closed between locate and activate
	act, _ := newActivator(ws)

	_, err := act.Activate(target)
	if !errors.Is(err, ErrActivation) {
		t.Fatalf("Activate() error = %v, want ErrActivation", err)
	}
	if ws.FindCalls != 3 {
		t.Errorf("FindByTitle calls = %d, want 3", ws.FindCalls)
	}
}

func TestActivateRecoversPlatformPanic(t *testing.T) {
	target := win("Notepad", 42)
	ws := desktoptest.NewWindows(target)
	ws.PanicOnFind = 1
	act, _ := newActivator(ws)

	got, err := act.Activate(target)
	if err != nil {
		t.Fatalf("Activate() error = %v, want success on second attempt", err)
	}
	if got.Handle != 42 {
		t.Errorf("Activate() handle = %d, want 42", got.Handle)
	}
	if ws.FindCalls != 2 {
		t.Errorf("FindByTitle calls = %d, want 2", ws.FindCalls)
	}
}

func TestNewActivatorDefaults(t *testing.T) {
	act := NewActivator(desktoptest.NewWindows(), clock.Real{}, ActivatorOptions{})
	if act.opts.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", act.opts.Attempts)
	}
}
