package events

import "github.com/dshills/slippy/internal/event/topic"

// Overlay topics.
const (
	// TopicOverlayOpen is published when a popup opens.
	TopicOverlayOpen topic.Topic = "overlay.open"

	// TopicOverlayClose is published when a popup closes.
	TopicOverlayClose topic.Topic = "overlay.close"
)

// OverlayPayload is the payload for overlay topics.
type OverlayPayload struct {
	// ID identifies the overlay.
	ID string

	// Content is the popup text.
	Content string

	// Reason describes why the overlay closed ("escape", "replaced", "closed").
	// It is empty for TopicOverlayOpen.
	Reason string
}

// Overlay close reasons.
const (
	ReasonEscape   = "escape"
	ReasonReplaced = "replaced"
	ReasonClosed   = "closed"
)
