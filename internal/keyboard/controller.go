package keyboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/slippy/internal/dom"
	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/event/topic"
	"github.com/dshills/slippy/internal/focus"
	"github.com/dshills/slippy/internal/geo"
	"github.com/dshills/slippy/internal/input/keymap"
	"github.com/dshills/slippy/internal/overlay"
)

// Errors returned by NewController.
var (
	ErrNoContainer = errors.New("keyboard: container is required")
	ErrNoMap       = errors.New("keyboard: map is required")
)

// MapFacade is the part of the map the controller drives.
type MapFacade interface {
	PanBy(offset geo.Point) error
	SetZoom(level float64) error
	Zoom() float64
}

// OverlayRegistry reports the open dismissible overlay, or nil.
type OverlayRegistry interface {
	OpenOverlay() overlay.Dismissible
}

// Dependencies are the collaborators of a Controller.
type Dependencies struct {
	// Container is the map container. Required.
	Container *dom.Target

	// Document receives the keydown listener while the controller is
	// enabled and focused. Defaults to the container's root ancestor.
	Document *dom.Target

	// Focus tracks container focus. When nil the controller creates a
	// tracker observing Container and stops it on Destroy.
	Focus *focus.Tracker

	// Map is the map facade. Required.
	Map MapFacade

	// Overlays is consulted on Escape. Optional.
	Overlays OverlayRegistry

	// Bus receives the raw key relay. Optional.
	Bus event.Bus

	// Bindings overrides the default key bindings.
	Bindings []keymap.Binding

	// Logger receives debug output. Optional.
	Logger *slog.Logger
}

// State is the controller state.
type State int

// Controller states.
const (
	StateDisabled State = iota
	StateEnabledUnfocused
	StateEnabledFocused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabledUnfocused:
		return "enabled/unfocused"
	case StateEnabledFocused:
		return "enabled/focused"
	default:
		return "unknown"
	}
}

// Controller turns key events on the map container into map operations.
type Controller struct {
	mu sync.Mutex

	config Config
	table  *keymap.Table

	container *dom.Target
	document  *dom.Target
	focus     *focus.Tracker
	ownsFocus bool
	focusHook focus.HookID

	mapView  MapFacade
	overlays OverlayRegistry
	bus      event.Bus
	logger   *slog.Logger

	enabled   bool
	destroyed bool

	relayIDs []dom.ListenerID
	keyDown  dom.ListenerID
	attached bool
}

// NewController creates a controller and installs the raw key relay on
// the container. If the configuration is enabled and the container
// already holds focus, the keydown listener is added immediately.
func NewController(cfg Config, deps Dependencies) (*Controller, error) {
	if deps.Container == nil {
		return nil, ErrNoContainer
	}
	if deps.Map == nil {
		return nil, ErrNoMap
	}

	cfg = cfg.normalized()

	bindings := deps.Bindings
	if bindings == nil {
		bindings = keymap.DefaultBindings()
	}
	table, err := keymap.NewTable(keymap.Options{
		PanDistance: cfg.PanDistance,
		ZoomDelta:   cfg.ZoomDelta,
	}, bindings)
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc := deps.Document
	if doc == nil {
		doc = deps.Container
		for doc.Parent() != nil {
			doc = doc.Parent()
		}
	}

	c := &Controller{
		config:    cfg,
		table:     table,
		container: deps.Container,
		document:  doc,
		focus:     deps.Focus,
		mapView:   deps.Map,
		overlays:  deps.Overlays,
		bus:       deps.Bus,
		logger:    logger.With("component", "keyboard"),
		enabled:   !cfg.Disabled,
	}

	if c.focus == nil {
		c.focus = focus.NewTracker(logger)
		if err := c.focus.Observe(deps.Container); err != nil {
			return nil, fmt.Errorf("keyboard: %w", err)
		}
		c.ownsFocus = true
	}

	if c.bus != nil {
		for _, typ := range []dom.EventType{dom.KeyDown, dom.KeyPress, dom.KeyUp} {
			c.relayIDs = append(c.relayIDs, c.container.AddEventListener(typ, c.relay))
		}
	}

	c.focusHook = c.focus.OnChange(c.focusChanged)

	c.mu.Lock()
	c.syncListenerLocked()
	c.mu.Unlock()

	return c, nil
}

// Enable turns keyboard navigation on. It is a no-op if already enabled.
func (c *Controller) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled || c.destroyed {
		return
	}
	c.enabled = true
	c.logger.Debug("enabled", "focused", c.focus.Focused())
	c.syncListenerLocked()
}

// Disable turns keyboard navigation off and removes the keydown listener.
// It is a no-op if already disabled.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.enabled = false
	c.logger.Debug("disabled")
	c.syncListenerLocked()
}

// Enabled reports whether keyboard navigation is enabled.
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Focused reports whether the container holds focus.
func (c *Controller) Focused() bool {
	return c.focus.Focused()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Attached reports whether the document keydown listener is installed.
func (c *Controller) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// Table returns the binding table in use.
func (c *Controller) Table() *keymap.Table {
	return c.table
}

// ForceFocus puts the focus tracker into the focused state without a
// trusted focus event. It exists for test harnesses and scripted hosts
// that cannot produce trusted events; normal focus comes from the
// container.
func (c *Controller) ForceFocus() {
	c.focus.OnFocus()
}

// Destroy removes every listener the controller installed. The
// controller must not be used afterwards.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.enabled = false
	c.syncListenerLocked()
	for _, id := range c.relayIDs {
		c.container.RemoveEventListener(id)
	}
	c.relayIDs = nil
	c.mu.Unlock()

	c.focus.RemoveHook(c.focusHook)
	if c.ownsFocus {
		c.focus.Stop()
	}
	c.logger.Debug("destroyed")
}

func (c *Controller) stateLocked() State {
	switch {
	case !c.enabled:
		return StateDisabled
	case c.focus.Focused():
		return StateEnabledFocused
	default:
		return StateEnabledUnfocused
	}
}

func (c *Controller) focusChanged(bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncListenerLocked()
}

// syncListenerLocked adds or removes the document keydown listener so
// that it is present exactly in the enabled and focused state.
func (c *Controller) syncListenerLocked() {
	want := !c.destroyed && c.stateLocked() == StateEnabledFocused
	switch {
	case want && !c.attached:
		c.keyDown = c.document.AddEventListener(dom.KeyDown, c.onKeyDown)
		c.attached = true
		c.logger.Debug("keydown listener added", "target", c.document.Name())
	case !want && c.attached:
		c.document.RemoveEventListener(c.keyDown)
		c.keyDown = 0
		c.attached = false
		c.logger.Debug("keydown listener removed", "target", c.document.Name())
	}
}

func (c *Controller) relay(ev *dom.Event) error {
	var t topic.Topic
	switch ev.Type {
	case dom.KeyDown:
		t = events.TopicKeyDown
	case dom.KeyPress:
		t = events.TopicKeyPress
	case dom.KeyUp:
		t = events.TopicKeyUp
	default:
		return nil
	}

	payload := events.KeyPayload{Key: ev.Key, Trusted: ev.Trusted}
	if err := c.bus.Publish(context.Background(), event.NewEvent(t, payload, "keyboard")); err != nil {
		c.logger.Warn("key relay failed", "type", string(ev.Type), "err", err)
	}
	return nil
}

func (c *Controller) onKeyDown(ev *dom.Event) error {
	mods := ev.Key.Modifiers
	if mods.HasCommand() {
		return nil
	}

	c.mu.Lock()
	active := c.stateLocked() == StateEnabledFocused && !c.destroyed
	c.mu.Unlock()
	if !active {
		return nil
	}

	action, ok := c.table.Resolve(ev.Key)
	if !ok {
		return nil
	}

	factor := 1.0
	if mods.HasShift() {
		factor = c.config.ShiftMultiplier
	}

	handled, err := c.perform(action, factor)
	if err != nil {
		return fmt.Errorf("keyboard: %s: %w", action.Kind, err)
	}
	if !handled {
		return nil
	}

	c.logger.Debug("key handled", "key", ev.Key.String(), "action", action.String(), "factor", factor)
	ev.PreventDefault()
	ev.StopPropagation()
	return nil
}

// perform runs action against the map. It reports false when the action
// had nothing to act on.
func (c *Controller) perform(action keymap.Action, factor float64) (bool, error) {
	switch {
	case action.Kind.IsPan():
		return true, c.mapView.PanBy(action.Offset(factor))
	case action.Kind.IsZoom():
		return true, c.mapView.SetZoom(c.mapView.Zoom() + action.Delta*factor)
	case action.Kind == keymap.KindDismissOverlay:
		return c.dismiss()
	}
	return false, nil
}

func (c *Controller) dismiss() (bool, error) {
	if c.overlays == nil {
		return false, nil
	}
	o := c.overlays.OpenOverlay()
	if o == nil || !o.DismissibleOnEscape() {
		return false, nil
	}
	if err := o.Dismiss(); err != nil {
		return false, err
	}
	return true, nil
}
