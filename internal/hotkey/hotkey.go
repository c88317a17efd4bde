// Package hotkey provides a global pause/resume hotkey using gohook.
// Each press of the combo flips between paused and running.
package hotkey

import (
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// EventType indicates whether injection should pause or resume.
type EventType int

const (
	// EventPause signals that the hotkey paused injection.
	EventPause EventType = iota
	// EventResume signals that the hotkey resumed injection.
	EventResume
)

func (t EventType) String() string {
	if t == EventPause {
		return "pause"
	}
	return "resume"
}

// Event is emitted on the channel returned by Events.
type Event struct {
	Type EventType
}

// Listener manages a global hotkey and emits pause/resume events.
type Listener struct {
	keys []string
	ch   chan Event
	done chan struct{}
	once sync.Once

	mu     sync.Mutex
	paused bool
}

// NewListener creates a Listener for the given key combo.
// keys should be lowercase key names (e.g., ["ctrl", "shift", "p"]).
func NewListener(keys []string) *Listener {
	return &Listener{
		keys: keys,
		ch:   make(chan Event, 16),
		done: make(chan struct{}),
	}
}

// Events returns the channel that receives hotkey events.
// The channel is closed when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start begins listening for the global hotkey.
// This function blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	hook.Register(hook.KeyDown, l.keys, func(e hook.Event) {
		l.toggle()
	})

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

// toggle emits the event for the opposite of the current state. The state
// flips only when the event is delivered, so a dropped press leaves the
// listener in step with whoever consumes the events.
func (l *Listener) toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := !l.paused
	ev := Event{Type: EventResume}
	if next {
		ev.Type = EventPause
	}
	select {
	case l.ch <- ev:
		l.paused = next
		slog.Info("[HOTKEY] toggled", "event", ev.Type.String())
	default:
		slog.Warn("[HOTKEY] event dropped, consumer is behind", "event", ev.Type.String())
	}
}

// Stop terminates the hotkey listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}
