package window

import (
	"errors"
	"testing"

	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/desktop/desktoptest"
)

func TestPointerInside(t *testing.T) {
	w := desktop.Window{Title: "Notepad", Bounds: desktop.Rect{Left: 100, Top: 100, Right: 600, Bottom: 500}}

	tests := []struct {
		name string
		p    desktop.Point
		want bool
	}{
		{"inside", desktop.Point{X: 300, Y: 300}, true},
		{"on left edge", desktop.Point{X: 100, Y: 300}, false},
		{"on bottom edge", desktop.Point{X: 300, Y: 500}, false},
		{"outside", desktop.Point{X: 1000, Y: 300}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewFocusGuard(&desktoptest.Input{Pointer: tt.p})
			got, at := g.PointerInside(w)
			if got != tt.want {
				t.Errorf("PointerInside() = %v, want %v", got, tt.want)
			}
			if at != tt.p {
				t.Errorf("PointerInside() position = %v, want %v", at, tt.p)
			}
		})
	}
}

func TestPointerInsideReadError(t *testing.T) {
	w := desktop.Window{Bounds: desktop.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}}
	in := &desktoptest.Input{Pointer: desktop.Point{X: 50, Y: 50}, CursorErr: errors.New("no display")}

	if ok, _ := NewFocusGuard(in).PointerInside(w); ok {
		t.Error("PointerInside() should be false when the pointer cannot be read")
	}
}
