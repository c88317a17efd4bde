package desktop

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{Left: 100, Top: 50, Right: 500, Bottom: 400}

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{300, 200}, true},
		{"just inside top-left", Point{101, 51}, true},
		{"just inside bottom-right", Point{499, 399}, true},
		{"left edge", Point{100, 200}, false},
		{"right edge", Point{500, 200}, false},
		{"top edge", Point{300, 50}, false},
		{"bottom edge", Point{300, 400}, false},
		{"outside left", Point{10, 200}, false},
		{"outside below", Point{300, 900}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNewClipboardUnknownBackend(t *testing.T) {
	_, err := NewClipboard("xsel")
	if err == nil {
		t.Error("NewClipboard() should fail for unknown backend")
	}
}

func TestNewClipboardRobotgoDefault(t *testing.T) {
	for _, name := range []string{"", "robotgo"} {
		cb, err := NewClipboard(name)
		if err != nil {
			t.Fatalf("NewClipboard(%q) error = %v", name, err)
		}
		if _, ok := cb.(Robot); !ok {
			t.Errorf("NewClipboard(%q) = %T, want Robot", name, cb)
		}
	}
}
