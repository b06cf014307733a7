package dom

import (
	"fmt"

	"github.com/dshills/slippy/internal/input/key"
)

// EventType names a document event.
type EventType string

// Event types.
const (
	KeyDown  EventType = "keydown"
	KeyPress EventType = "keypress"
	KeyUp    EventType = "keyup"
	Focus    EventType = "focus"
	Blur     EventType = "blur"
)

// Bubbles reports whether events of this type propagate to parent targets.
func (t EventType) Bubbles() bool {
	return t != Focus && t != Blur
}

// IsKey reports whether t is a keyboard event type.
func (t EventType) IsKey() bool {
	return t == KeyDown || t == KeyPress || t == KeyUp
}

// Event is a single document event.
type Event struct {
	// Type is the event type.
	Type EventType

	// Key is the key for keyboard events.
	Key key.Event

	// Trusted is set for events generated by the user agent (the terminal
	// backend) rather than by program code.
	Trusted bool

	target           *Target
	currentTarget    *Target
	defaultPrevented bool
	stopped          bool
	stoppedNow       bool
}

// NewEvent creates an untrusted event.
func NewEvent(typ EventType) *Event {
	return &Event{Type: typ}
}

// NewKeyEvent creates an untrusted keyboard event.
func NewKeyEvent(typ EventType, k key.Event) *Event {
	return &Event{Type: typ, Key: k}
}

// Target returns the target the event was dispatched to.
func (e *Event) Target() *Target { return e.target }

// CurrentTarget returns the target whose listeners are running.
func (e *Event) CurrentTarget() *Target { return e.currentTarget }

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further targets.
// Remaining listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// StopImmediatePropagation stops the event from reaching any further
// listener, including those on the current target.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedNow = true
}

// PropagationStopped reports whether propagation was stopped.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// String returns a debug representation like "keydown(Up)".
func (e *Event) String() string {
	if e.Type.IsKey() {
		return fmt.Sprintf("%s(%s)", e.Type, e.Key)
	}
	return string(e.Type)
}
