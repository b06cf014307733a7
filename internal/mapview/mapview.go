// Package mapview holds the view state of the map: its geographic center
// and zoom level. It is the facade the keyboard controller drives.
//
// Panning works in screen pixels at the current zoom: the center is
// projected, offset and unprojected. Zoom requests are clamped to the
// configured range. Every state change is published on the event bus.
package mapview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/geo"
)

// ErrDetached is returned by mutating calls on a map that is not attached
// to a document.
var ErrDetached = errors.New("mapview: map is not attached")

// ErrInvalidZoom is returned for a NaN or infinite zoom level.
var ErrInvalidZoom = errors.New("mapview: invalid zoom level")

// Default zoom range.
const (
	DefaultMinZoom = 0
	DefaultMaxZoom = 18
)

// Options configures a Map.
type Options struct {
	Center  geo.LatLng
	Zoom    float64
	MinZoom float64
	MaxZoom float64

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns a view of (0,0) at zoom 0 with the default range.
func DefaultOptions() Options {
	return Options{
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

// Map is the map view state.
type Map struct {
	mu       sync.RWMutex
	center   geo.LatLng
	zoom     float64
	minZoom  float64
	maxZoom  float64
	attached bool

	bus    event.Bus
	logger *slog.Logger
}

// New creates an attached map. bus may be nil, in which case no state
// events are published. A MaxZoom below MinZoom is raised to MinZoom.
func New(bus event.Bus, opts Options) *Map {
	if opts.MaxZoom < opts.MinZoom {
		opts.MaxZoom = opts.MinZoom
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Map{
		center:   opts.Center,
		minZoom:  opts.MinZoom,
		maxZoom:  opts.MaxZoom,
		attached: true,
		bus:      bus,
		logger:   logger,
	}
	m.zoom = m.clamp(opts.Zoom)
	return m
}

// PanBy moves the center by offset screen pixels at the current zoom.
// Positive X pans east, positive Y pans south.
func (m *Map) PanBy(offset geo.Point) error {
	m.mu.Lock()
	if !m.attached {
		m.mu.Unlock()
		return ErrDetached
	}
	from := m.center
	p := geo.Project(from, m.zoom).Add(offset)
	m.center = geo.Unproject(p, m.zoom)
	to := m.center
	m.mu.Unlock()

	if offset.IsZero() {
		return nil
	}
	m.logger.Debug("map moved", "from", from.String(), "to", to.String(), "offset", offset.String())
	return m.publish(event.NewEvent(events.TopicMapMove, events.MovePayload{From: from, To: to, Offset: offset}, "mapview"))
}

// SetZoom sets the zoom level, clamped to the map's range.
func (m *Map) SetZoom(level float64) error {
	if math.IsNaN(level) || math.IsInf(level, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, level)
	}

	m.mu.Lock()
	if !m.attached {
		m.mu.Unlock()
		return ErrDetached
	}
	from := m.zoom
	m.zoom = m.clamp(level)
	to := m.zoom
	m.mu.Unlock()

	if from == to {
		return nil
	}
	m.logger.Debug("map zoomed", "from", from, "to", to)
	return m.publish(event.NewEvent(events.TopicMapZoom, events.ZoomPayload{From: from, To: to}, "mapview"))
}

// SetView sets center and zoom together.
func (m *Map) SetView(center geo.LatLng, level float64) error {
	m.mu.Lock()
	if !m.attached {
		m.mu.Unlock()
		return ErrDetached
	}
	from := m.center
	m.center = center
	m.mu.Unlock()

	if from != center {
		if err := m.publish(event.NewEvent(events.TopicMapMove, events.MovePayload{From: from, To: center}, "mapview")); err != nil {
			return err
		}
	}
	return m.SetZoom(level)
}

// Zoom returns the current zoom level.
func (m *Map) Zoom() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zoom
}

// Center returns the current center.
func (m *Map) Center() geo.LatLng {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center
}

// ZoomRange returns the minimum and maximum zoom.
func (m *Map) ZoomRange() (lo, hi float64) {
	return m.minZoom, m.maxZoom
}

// Detach marks the map as removed from its document. Further mutations
// fail with ErrDetached; queries keep working.
func (m *Map) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attached = false
}

// Attach re-attaches a detached map.
func (m *Map) Attach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attached = true
}

// Attached reports whether the map is attached.
func (m *Map) Attached() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attached
}

// PixelCenter returns the projected center at the current zoom.
func (m *Map) PixelCenter() geo.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return geo.Project(m.center, m.zoom)
}

func (m *Map) clamp(z float64) float64 {
	return math.Max(m.minZoom, math.Min(m.maxZoom, z))
}

func (m *Map) publish(ev any) error {
	if m.bus == nil {
		return nil
	}
	if err := m.bus.Publish(context.Background(), ev); err != nil && !errors.Is(err, event.ErrBusClosed) {
		return fmt.Errorf("mapview: publish: %w", err)
	}
	return nil
}
