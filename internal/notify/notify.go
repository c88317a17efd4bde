// Package notify shows desktop notifications after each injection.
package notify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/beeep"
)

// DefaultPreviewLen is the number of characters of body text shown.
const DefaultPreviewLen = 80

// send is replaced in tests.
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Desktop sends native notifications through beeep.
type Desktop struct {
	PreviewLen int // characters of body kept; <= 0 means DefaultPreviewLen
}

// NewDesktop returns a Desktop notifier with the default preview length.
func NewDesktop() *Desktop {
	return &Desktop{PreviewLen: DefaultPreviewLen}
}

// Notify shows title with a one-line preview of body.
func (d *Desktop) Notify(title, body string) error {
	if err := send(title, Preview(body, d.previewLen())); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func (d *Desktop) previewLen() int {
	if d.PreviewLen <= 0 {
		return DefaultPreviewLen
	}
	return d.PreviewLen
}

// Preview collapses whitespace in s and truncates it to n characters,
// marking truncation with "...".
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
