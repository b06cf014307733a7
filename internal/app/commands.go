package app

import (
	"context"
	"fmt"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/input/key"
	"github.com/dshills/slippy/internal/overlay"
)

// Command keys. They are read from the raw keydown relay, so they work
// whether or not keyboard navigation is enabled.
const (
	keyQuit        = 'q'
	keyPopup       = 'p'
	keyClosePopup  = 'x'
	keyToggleInput = 'e'
)

// subscribeCommands installs the application's own key commands and
// map state logging.
func (app *Application) subscribeCommands() error {
	sub, err := app.bus.SubscribeFunc(events.TopicKeyDown, app.onCommandKey,
		event.WithPriority(event.PriorityLow))
	if err != nil {
		return err
	}
	app.subs = append(app.subs, sub)

	sub, err = app.bus.SubscribeFunc(events.TopicMapAll, app.onMapChange,
		event.WithPriority(event.PriorityLow))
	if err != nil {
		return err
	}
	app.subs = append(app.subs, sub)
	return nil
}

func (app *Application) onCommandKey(_ context.Context, e any) error {
	p, ok := event.Payload[events.KeyPayload](e)
	if !ok {
		return nil
	}
	k := p.Key
	if k.Key != key.KeyRune {
		return nil
	}
	mods := k.Modifiers

	switch {
	case mods.HasCtrl() && k.ID().Rune == 'c':
		app.quit = true
	case mods.HasCommand():
		return nil
	case k.ID().Rune == keyQuit && !mods.HasShift():
		app.quit = true
	case k.ID().Rune == keyPopup:
		return app.openPopup(!mods.HasShift())
	case k.ID().Rune == keyClosePopup:
		app.overlays.CloseCurrent()
	case k.ID().Rune == keyToggleInput:
		if app.keyboard.Enabled() {
			app.keyboard.Disable()
		} else {
			app.keyboard.Enable()
		}
		app.message = "keyboard " + app.keyboard.State().String()
	}
	return nil
}

// openPopup opens a popup describing the map center. A popup opened with
// closeOnEscape false stays open on Escape.
func (app *Application) openPopup(closeOnEscape bool) error {
	c := app.mapView.Center()
	content := fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
	if !closeOnEscape {
		content += " (sticky)"
	}
	return app.overlays.Open(overlay.NewPopup(content,
		overlay.WithLatLng(c),
		overlay.WithCloseOnEscape(closeOnEscape)))
}

func (app *Application) onMapChange(_ context.Context, e any) error {
	if p, ok := event.Payload[events.MovePayload](e); ok {
		app.logger.Debug("map moved", "center", p.To, "offset", p.Offset)
	}
	if p, ok := event.Payload[events.ZoomPayload](e); ok {
		app.logger.Debug("map zoomed", "from", p.From, "to", p.To)
	}
	return nil
}
