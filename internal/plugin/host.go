package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/geo"
)

// DefaultTimeout bounds a single script load or handler call.
const DefaultTimeout = time.Second

// MapAPI is the slice of the map exposed to scripts.
type MapAPI interface {
	PanBy(offset geo.Point) error
	SetZoom(level float64) error
	Zoom() float64
	Center() geo.LatLng
}

// Dependencies are the collaborators of a Host.
type Dependencies struct {
	Bus    event.Bus
	Map    MapAPI
	Logger *slog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithTimeout sets the per-call execution limit.
// Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		h.timeout = d
	}
}

// Host loads plugins and routes bus events to their Lua handlers.
type Host struct {
	bus     event.Bus
	mapAPI  MapAPI
	logger  *slog.Logger
	timeout time.Duration

	plugins []*script
	closed  bool
}

// script is one loaded plugin and its Lua state.
type script struct {
	host  *Host
	name  string
	L     *lua.LState
	subs  map[string]event.Subscription
	depth int
}

// NewHost creates a plugin host.
func NewHost(deps Dependencies, opts ...Option) *Host {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Host{
		bus:     deps.Bus,
		mapAPI:  deps.Map,
		logger:  logger,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadFile loads a plugin from a Lua file. The plugin is named after
// the file without its extension.
func (h *Host) LoadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return h.LoadString(name, string(code))
}

// LoadString loads a plugin from source. On error the plugin's
// subscriptions are released and it is not registered.
func (h *Host) LoadString(name, code string) error {
	if h.closed {
		return ErrHostClosed
	}
	for _, p := range h.plugins {
		if p.name == name {
			return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
		}
	}

	s := &script{
		host: h,
		name: name,
		L:    newSandboxedState(),
		subs: make(map[string]event.Subscription),
	}
	s.L.SetGlobal("map", s.module())

	err := s.run(context.Background(), func() error {
		return s.L.DoString(code)
	})
	if err != nil {
		s.close()
		return &ScriptError{Plugin: name, Err: err}
	}

	h.plugins = append(h.plugins, s)
	h.logger.Info("plugin loaded", "plugin", name, "subscriptions", len(s.subs))
	return nil
}

// Plugins returns the names of loaded plugins in load order.
func (h *Host) Plugins() []string {
	names := make([]string, len(h.plugins))
	for i, p := range h.plugins {
		names[i] = p.name
	}
	return names
}

// Close unsubscribes every handler and closes all Lua states.
func (h *Host) Close() error {
	if h.closed {
		return ErrHostClosed
	}
	h.closed = true
	for _, p := range h.plugins {
		p.close()
	}
	h.plugins = nil
	return nil
}

// run executes fn with the host timeout applied to the outermost call.
// Nested calls reached through the bus share the outer deadline.
func (s *script) run(ctx context.Context, fn func() error) (err error) {
	if s.depth == 0 && s.host.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.host.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	s.depth++
	defer func() {
		s.depth--
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call invokes a Lua handler with one argument.
func (s *script) call(ctx context.Context, fn *lua.LFunction, arg lua.LValue) error {
	return s.run(ctx, func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, arg)
	})
}

func (s *script) close() {
	for id, sub := range s.subs {
		if s.host.bus != nil {
			_ = s.host.bus.Unsubscribe(sub)
		}
		delete(s.subs, id)
	}
	s.L.Close()
}
