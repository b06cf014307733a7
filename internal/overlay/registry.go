package overlay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/event/topic"
)

// ErrNilPopup is returned by Open for a nil popup.
var ErrNilPopup = errors.New("overlay: nil popup")

const reasonDismissed = events.ReasonEscape

// Registry holds the currently open popup.
type Registry struct {
	mu      sync.Mutex
	current *Popup

	bus    event.Bus
	logger *slog.Logger
}

// NewRegistry creates an empty registry. bus and logger may be nil.
func NewRegistry(bus event.Bus, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{bus: bus, logger: logger}
}

// Open opens p, closing any other open popup first.
// Opening the popup that is already open has no effect.
func (r *Registry) Open(p *Popup) error {
	if p == nil {
		return ErrNilPopup
	}

	r.mu.Lock()
	prev := r.current
	if prev == p {
		r.mu.Unlock()
		return nil
	}
	r.current = p
	r.mu.Unlock()

	if prev != nil {
		prev.setRegistry(nil)
		r.logger.Debug("popup replaced", "id", prev.ID())
		r.publish(events.TopicOverlayClose, prev, events.ReasonReplaced)
	}
	p.setRegistry(r)

	r.logger.Debug("popup opened", "id", p.ID(), "escape", p.DismissibleOnEscape())
	r.publish(events.TopicOverlayOpen, p, "")
	return nil
}

// Close closes p if it is the open popup. It reports whether it was.
func (r *Registry) Close(p *Popup) bool {
	if p == nil {
		return false
	}
	return r.close(p, events.ReasonClosed)
}

// CloseCurrent closes whichever popup is open.
func (r *Registry) CloseCurrent() bool {
	r.mu.Lock()
	p := r.current
	r.mu.Unlock()
	return r.Close(p)
}

// Current returns the open popup, or nil.
func (r *Registry) Current() *Popup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OpenOverlay returns the open popup as a Dismissible, or a nil interface
// when none is open.
func (r *Registry) OpenOverlay() Dismissible {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	return r.current
}

func (r *Registry) close(p *Popup, reason string) bool {
	r.mu.Lock()
	if r.current != p {
		r.mu.Unlock()
		return false
	}
	r.current = nil
	r.mu.Unlock()

	p.setRegistry(nil)
	r.logger.Debug("popup closed", "id", p.ID(), "reason", reason)
	r.publish(events.TopicOverlayClose, p, reason)
	return true
}

func (r *Registry) publish(t topic.Topic, p *Popup, reason string) {
	if r.bus == nil {
		return
	}
	payload := events.OverlayPayload{ID: p.ID(), Content: p.Content(), Reason: reason}
	if err := r.bus.Publish(context.Background(), event.NewEvent(t, payload, "overlay")); err != nil {
		r.logger.Warn("overlay event not published", "err", err)
	}
}
