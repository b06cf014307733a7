package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/slippy/internal/event/topic"
)

// Event is a published value of payload type T. The bus handles events as
// any and routes them by EventTopic.
type Event[T any] struct {
	Type    topic.Topic
	Payload T

	// ID is unique per event. Source names the publishing component.
	ID     string
	Source string
	Time   time.Time
}

// TopicProvider is implemented by anything the bus can route.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// NewEvent stamps payload with a fresh ID and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    t,
		Payload: payload,
		ID:      uuid.NewString(),
		Source:  source,
		Time:    time.Now(),
	}
}

func (e Event[T]) EventTopic() topic.Topic { return e.Type }

// Payload returns the payload of e when e is an Event[T].
func Payload[T any](e any) (T, bool) {
	if ev, ok := e.(Event[T]); ok {
		return ev.Payload, true
	}
	var zero T
	return zero, false
}
