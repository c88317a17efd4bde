// Command test-inject is a manual test for clipboard paste delivery.
// It waits 3 seconds, then pastes a timestamped test entry the same way
// the watcher does and restores the clipboard afterwards.
// Focus a text editor before the countdown finishes.
//
// Usage:
//
//	go run ./cmd/test-inject [--clipboard robotgo|native] [--text "..."]
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/chaz8081/padfeed/internal/clock"
	"github.com/chaz8081/padfeed/internal/controller"
	"github.com/chaz8081/padfeed/internal/desktop"
	"github.com/chaz8081/padfeed/internal/inject"
)

func main() {
	backend := flag.String("clipboard", "robotgo", "clipboard backend: robotgo or native")
	text := flag.String("text", "Hello from padfeed! 你好。", "text to paste")
	breaks := flag.Int("breaks", 2, "enter presses after the text")
	flag.Parse()

	cb, err := desktop.NewClipboard(*backend)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Will paste %q via the %q clipboard in 3 seconds...\n", *text, *backend)
	fmt.Println("Focus a text editor now!")

	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	clk := clock.Real{}
	tr := inject.NewTransfer(cb, desktop.Robot{}, clk, inject.DefaultOptions())
	if err := tr.Deliver(controller.TimestampLine(clk.Now())); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := tr.Deliver(*text); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := tr.PressLineBreaks(*breaks, 200*time.Millisecond); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	after, _ := cb.ReadText()
	fmt.Printf("\nDone! Clipboard now holds %q\n", after)
}
