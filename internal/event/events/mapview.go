package events

import (
	"github.com/dshills/slippy/internal/event/topic"
	"github.com/dshills/slippy/internal/geo"
)

// Map state topics.
const (
	// TopicMapMove is published after the map center changes.
	TopicMapMove topic.Topic = "map.move"

	// TopicMapZoom is published after the zoom level changes.
	TopicMapZoom topic.Topic = "map.zoom"

	// TopicMapAll matches all map state topics.
	TopicMapAll topic.Topic = "map.*"
)

// MovePayload is the payload for TopicMapMove.
type MovePayload struct {
	// From is the center before the move.
	From geo.LatLng

	// To is the center after the move.
	To geo.LatLng

	// Offset is the requested pixel offset.
	Offset geo.Point
}

// ZoomPayload is the payload for TopicMapZoom.
type ZoomPayload struct {
	// From is the zoom level before the change.
	From float64

	// To is the zoom level after clamping.
	To float64
}
