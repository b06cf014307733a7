package events

import (
	"github.com/dshills/slippy/internal/event/topic"
	"github.com/dshills/slippy/internal/input/key"
)

// Raw keyboard topics.
const (
	// TopicKeyDown is published for every keydown event on the map container.
	TopicKeyDown topic.Topic = "keydown"

	// TopicKeyPress is published for every keypress event on the map container.
	TopicKeyPress topic.Topic = "keypress"

	// TopicKeyUp is published for every keyup event on the map container.
	TopicKeyUp topic.Topic = "keyup"
)

// KeyTopics lists the raw keyboard topics in dispatch order.
var KeyTopics = []topic.Topic{TopicKeyDown, TopicKeyPress, TopicKeyUp}

// KeyPayload is the payload for raw keyboard topics.
type KeyPayload struct {
	// Key is the key event as delivered to the container.
	Key key.Event

	// Trusted reports whether the event came from the user agent.
	Trusted bool
}
