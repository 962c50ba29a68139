// Package input turns raw device events into simulation input.
//
// Listeners push events into an Inbox as they arrive; the frame loop drains
// it once at the start of each frame, so no input is applied mid-frame.
package input

import "sync"

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerUp
	EventPointerMove
	EventWheel
)

// Key is a device-independent key binding.
type Key int

const (
	KeyUnknown Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
	KeyRun
	KeyEscape
)

// Button is a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// Event is a single input event in screen coordinates.
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	X, Y   float32 // Pointer position in pixels
	Wheel  float32 // Scroll amount, positive zooms out
	Width  int
	Height int
}

// Inbox buffers events between frames. Push is safe from any goroutine.
type Inbox struct {
	mu      sync.Mutex
	pending []Event
	drained []Event
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{
		pending: make([]Event, 0, 16),
		drained: make([]Event, 0, 16),
	}
}

// Push queues an event for the next frame.
func (i *Inbox) Push(ev Event) {
	i.mu.Lock()
	i.pending = append(i.pending, ev)
	i.mu.Unlock()
}

// Drain returns every event queued since the previous Drain, oldest first.
// The returned slice is reused by the next Drain call.
func (i *Inbox) Drain() []Event {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.drained, i.pending = i.pending, i.drained[:0]
	return i.drained
}

// Len returns the number of queued events.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.pending)
}

// State holds the level-triggered movement keys.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Running  bool
}

// Apply returns the state after a key edge. Non-key events leave it unchanged.
func (s State) Apply(ev Event) State {
	var pressed bool
	switch ev.Type {
	case EventKeyDown:
		pressed = true
	case EventKeyUp:
		pressed = false
	default:
		return s
	}

	switch ev.Key {
	case KeyForward:
		s.Forward = pressed
	case KeyBackward:
		s.Backward = pressed
	case KeyLeft:
		s.Left = pressed
	case KeyRight:
		s.Right = pressed
	case KeyRun:
		s.Running = pressed
	}
	return s
}

// Replay folds a sequence of events into s.
func (s State) Replay(events []Event) State {
	for _, ev := range events {
		s = s.Apply(ev)
	}
	return s
}
