package overlay

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/slippy/internal/geo"
)

// Dismissible is an open overlay that may be closed from the keyboard.
type Dismissible interface {
	// ID identifies the overlay.
	ID() string

	// DismissibleOnEscape reports whether Escape may close the overlay.
	DismissibleOnEscape() bool

	// Dismiss closes the overlay and clears it from its registry.
	Dismiss() error
}

// PopupOption configures a Popup.
type PopupOption func(*Popup)

// WithCloseOnEscape sets whether Escape dismisses the popup. Default true.
func WithCloseOnEscape(enabled bool) PopupOption {
	return func(p *Popup) {
		p.closeOnEscape = enabled
	}
}

// WithLatLng anchors the popup at a position.
func WithLatLng(ll geo.LatLng) PopupOption {
	return func(p *Popup) {
		p.latLng = ll
	}
}

// Popup is a text overlay anchored on the map.
type Popup struct {
	id            string
	content       string
	latLng        geo.LatLng
	closeOnEscape bool

	mu       sync.Mutex
	registry *Registry
}

// NewPopup creates a closed popup.
func NewPopup(content string, opts ...PopupOption) *Popup {
	p := &Popup{
		id:            uuid.NewString(),
		content:       content,
		closeOnEscape: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the popup's unique ID.
func (p *Popup) ID() string { return p.id }

// Content returns the popup text.
func (p *Popup) Content() string { return p.content }

// LatLng returns the popup anchor.
func (p *Popup) LatLng() geo.LatLng { return p.latLng }

// DismissibleOnEscape reports whether Escape may close the popup.
// The value is fixed at creation.
func (p *Popup) DismissibleOnEscape() bool { return p.closeOnEscape }

// IsOpen reports whether the popup is open in a registry.
func (p *Popup) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry != nil
}

// Dismiss closes the popup. It is a no-op for a closed popup.
func (p *Popup) Dismiss() error {
	p.mu.Lock()
	r := p.registry
	p.mu.Unlock()

	if r == nil {
		return nil
	}
	r.close(p, reasonDismissed)
	return nil
}

func (p *Popup) setRegistry(r *Registry) {
	p.mu.Lock()
	p.registry = r
	p.mu.Unlock()
}
