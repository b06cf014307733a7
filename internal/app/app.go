// Package app wires the map, its keyboard controller and the terminal
// together and runs the event loop.
//
// All state is owned by the goroutine running Run. Work from other
// goroutines, such as configuration file changes, is posted to the
// terminal as interrupt events and handled on the loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/slippy/internal/backend"
	"github.com/dshills/slippy/internal/config"
	"github.com/dshills/slippy/internal/dom"
	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/focus"
	"github.com/dshills/slippy/internal/geo"
	"github.com/dshills/slippy/internal/keyboard"
	"github.com/dshills/slippy/internal/mapview"
	"github.com/dshills/slippy/internal/overlay"
	"github.com/dshills/slippy/internal/plugin"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Reload reads it again.
	ConfigPath string

	// Config is the starting configuration. Nil loads ConfigPath, or
	// uses defaults when ConfigPath is empty.
	Config *config.Config

	// Plugins are Lua scripts loaded after those in Config.
	Plugins []string

	// Watch reloads the configuration when ConfigPath changes.
	Watch bool

	// Terminal is the display. Nil runs headless; Run then fails.
	Terminal *backend.Terminal

	// Logger receives application logs. Nil discards.
	Logger *slog.Logger
}

// reloadRequest is posted by the config watcher.
type reloadRequest struct {
	path string
}

// quitRequest is posted by RequestQuit.
type quitRequest struct{}

// Application owns every map component.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *slog.Logger

	bus       event.Bus
	document  *dom.Target
	container *dom.Target
	focus     *focus.Tracker
	mapView   *mapview.Map
	overlays  *overlay.Registry
	keyboard  *keyboard.Controller
	plugins   *plugin.Host
	watcher   *config.Watcher
	term      *backend.Terminal

	subs    []event.Subscription
	message string
	quit    bool
	closed  bool
	running atomic.Bool

	ready     chan struct{}
	readyOnce sync.Once
}

// New builds the application. Plugin load failures are logged and do
// not fail construction.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		logger: opts.Logger,
		term:   opts.Terminal,
		ready:  make(chan struct{}),
	}
	if app.logger == nil {
		app.logger = slog.New(slog.DiscardHandler)
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		if app.opts.ConfigPath != "" {
			cfg, err = config.Load(app.opts.ConfigPath)
		} else {
			cfg = config.Default()
		}
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	app.bus = event.NewBus(event.WithLogger(app.logger.With("component", "bus")))

	app.document = dom.NewDocument()
	app.container = dom.NewTarget("map", app.document)

	app.focus = focus.NewTracker(app.logger)
	if err := app.focus.Observe(app.container); err != nil {
		return &InitError{Component: "focus", Err: err}
	}

	app.mapView = mapview.New(app.bus, mapview.Options{
		Center:  geo.LatLng{Lat: cfg.Map.Lat, Lng: cfg.Map.Lng},
		Zoom:    cfg.Map.Zoom,
		MinZoom: cfg.Map.MinZoom,
		MaxZoom: cfg.Map.MaxZoom,
		Logger:  app.logger,
	})
	app.overlays = overlay.NewRegistry(app.bus, app.logger)

	if err := app.initKeyboard(cfg.Keyboard); err != nil {
		return &InitError{Component: "keyboard", Err: err}
	}
	if err := app.subscribeCommands(); err != nil {
		return &InitError{Component: "commands", Err: err}
	}

	app.plugins = plugin.NewHost(plugin.Dependencies{
		Bus:    app.bus,
		Map:    app.mapView,
		Logger: app.logger.With("component", "plugin"),
	})
	scripts := append(append([]string(nil), cfg.Plugins.Scripts...), app.opts.Plugins...)
	for _, path := range scripts {
		if err := app.plugins.LoadFile(path); err != nil {
			app.logger.Warn("plugin not loaded", "path", path, "error", err)
			app.message = "plugin error: " + path
		}
	}

	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.configChanged,
			config.WithWatcherLogger(app.logger))
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		app.watcher = w
	}

	app.logger.Info("map ready",
		"center", app.mapView.Center(),
		"zoom", app.mapView.Zoom(),
		"keyboard", app.keyboard.State())
	return nil
}

// initKeyboard replaces the keyboard controller with one built from kc.
// The old controller is kept when the new one cannot be built.
func (app *Application) initKeyboard(kc config.KeyboardConfig) error {
	bindings, err := kc.KeyBindings()
	if err != nil {
		return err
	}
	ctrl, err := keyboard.NewController(keyboard.Config{
		PanDistance:     kc.PanDistance,
		ZoomDelta:       kc.ZoomDelta,
		ShiftMultiplier: kc.ShiftMultiplier,
		Disabled:        !kc.Enabled,
	}, keyboard.Dependencies{
		Container: app.container,
		Document:  app.document,
		Focus:     app.focus,
		Map:       app.mapView,
		Overlays:  app.overlays,
		Bus:       app.bus,
		Bindings:  bindings,
		Logger:    app.logger,
	})
	if err != nil {
		return err
	}
	if app.keyboard != nil {
		app.keyboard.Destroy()
	}
	app.keyboard = ctrl
	return nil
}

// configChanged runs on the watcher goroutine.
func (app *Application) configChanged(path string) {
	if app.term == nil {
		return
	}
	if err := app.term.Interrupt(reloadRequest{path: path}); err != nil {
		app.logger.Warn("reload dropped", "path", path, "error", err)
	}
}

// RequestQuit asks a running event loop to stop. It is safe to call from
// any goroutine.
func (app *Application) RequestQuit() error {
	if app.term == nil {
		return ErrNoTerminal
	}
	return app.term.Interrupt(quitRequest{})
}

// Reload reads the configuration file again and rebuilds the keyboard
// controller from it. On error the running configuration is kept.
func (app *Application) Reload() error {
	if app.opts.ConfigPath == "" {
		return ErrNoConfigPath
	}
	cfg, err := config.Load(app.opts.ConfigPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil {
		err = app.initKeyboard(cfg.Keyboard)
	}
	if err != nil {
		app.logger.Warn("reload failed", "path", app.opts.ConfigPath, "error", err)
		app.message = "reload failed"
		return fmt.Errorf("reload: %w", err)
	}

	app.cfg.Keyboard = cfg.Keyboard
	app.message = "config reloaded"
	app.logger.Info("config reloaded", "path", app.opts.ConfigPath, "keyboard", app.keyboard.State())

	ev := event.NewEvent(events.TopicConfigReloaded, events.ConfigReloadedPayload{Path: app.opts.ConfigPath}, "app")
	if err := app.bus.Publish(context.Background(), ev); err != nil && !errors.Is(err, event.ErrBusClosed) {
		return err
	}
	return nil
}

// Run initializes the terminal and processes events until quit.
func (app *Application) Run() error {
	if app.term == nil {
		return ErrNoTerminal
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.term.Shutdown()
	app.readyOnce.Do(func() { close(app.ready) })

	app.draw()
	for {
		ev := app.term.PollEvent()
		if ev == nil {
			return nil
		}
		if err := app.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		app.draw()
	}
}

// HandleEvent processes one terminal event. It returns ErrQuit once a
// quit command has been seen. Errors from map operations are logged and
// shown in the status line.
func (app *Application) HandleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventInterrupt:
		switch req := e.Data().(type) {
		case reloadRequest:
			app.logger.Debug("config file changed", "path", req.path)
			_ = app.Reload()
		case quitRequest:
			app.quit = true
		}
	case *tcell.EventResize:
		if app.term != nil {
			app.term.Screen().Sync()
		}
	default:
		app.dispatch(backend.Translate(ev))
	}

	if app.quit {
		return ErrQuit
	}
	return nil
}

// dispatch delivers translated events to the map container. A keypress
// is suppressed when its keydown was consumed.
func (app *Application) dispatch(evs []*dom.Event) {
	consumed := false
	for _, ev := range evs {
		if ev.Type == dom.KeyPress && consumed {
			continue
		}
		notPrevented, err := app.container.Dispatch(ev)
		if err != nil {
			app.logger.Warn("event failed", "event", ev.String(), "error", err)
			app.message = err.Error()
		}
		if ev.Type == dom.KeyDown && !notPrevented {
			consumed = true
		}
	}
}

func (app *Application) draw() {
	if app.term == nil {
		return
	}
	v := backend.View{
		Center:  app.mapView.Center(),
		Zoom:    app.mapView.Zoom(),
		State:   app.keyboard.State().String(),
		Message: app.message,
	}
	if p := app.overlays.Current(); p != nil {
		v.Popup = p.Content()
	}
	app.term.Draw(v)
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() {
	if app.closed {
		return
	}
	app.closed = true

	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.logger.Warn("watcher close failed", "error", err)
		}
	}
	if app.plugins != nil {
		_ = app.plugins.Close()
	}
	if app.keyboard != nil {
		app.keyboard.Destroy()
	}
	if app.focus != nil {
		app.focus.Stop()
	}
	if app.bus != nil {
		for _, sub := range app.subs {
			_ = app.bus.Unsubscribe(sub)
		}
		_ = app.bus.Close()
	}
	app.logger.Debug("shutdown complete")
}

// Ready is closed once Run has initialized the terminal.
func (app *Application) Ready() <-chan struct{} { return app.ready }

// Bus returns the event bus.
func (app *Application) Bus() event.Bus { return app.bus }

// Config returns the running configuration.
func (app *Application) Config() *config.Config { return app.cfg }

// Map returns the map view.
func (app *Application) Map() *mapview.Map { return app.mapView }

// Overlays returns the popup registry.
func (app *Application) Overlays() *overlay.Registry { return app.overlays }

// Keyboard returns the current keyboard controller. It changes on Reload.
func (app *Application) Keyboard() *keyboard.Controller { return app.keyboard }

// Plugins returns the plugin host.
func (app *Application) Plugins() *plugin.Host { return app.plugins }

// Container returns the map container target.
func (app *Application) Container() *dom.Target { return app.container }

// Message returns the status line message.
func (app *Application) Message() string { return app.message }
