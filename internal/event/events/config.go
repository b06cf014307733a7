package events

import "github.com/dshills/slippy/internal/event/topic"

// TopicConfigReloaded is published after a configuration file change has
// been applied.
const TopicConfigReloaded topic.Topic = "config.reloaded"

// ConfigReloadedPayload is the payload for TopicConfigReloaded.
type ConfigReloadedPayload struct {
	// Path is the configuration file that changed.
	Path string
}
