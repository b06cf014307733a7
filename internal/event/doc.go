// Package event provides the map event bus.
//
// The bus carries raw keyboard traffic (keydown, keypress, keyup) and map
// state notifications (map.move, map.zoom, overlay.open, overlay.close) to
// any interested listener: feature layers, Lua plugins, the renderer. None
// of those listeners are gated by the keyboard controller.
//
// # Delivery
//
// Delivery is synchronous. Publish runs every matching handler in the
// caller's goroutine, in priority order, before returning. The map runs a
// single event loop so handlers never overlap.
//
// A handler that returns an error or panics does not stop delivery to the
// remaining handlers; the failure is counted in Stats and reported to the
// configured ErrorHandler or PanicHandler.
//
// # Usage
//
//	bus := event.NewBus()
//	defer bus.Close()
//
//	sub, err := bus.SubscribeFunc(events.TopicKeyDown, func(ctx context.Context, e any) error {
//	    ev := e.(event.Event[events.KeyPayload])
//	    fmt.Println(ev.Payload.Key)
//	    return nil
//	})
//
//	_ = bus.Publish(ctx, event.NewEvent(events.TopicKeyDown, payload, "keyboard"))
//	_ = bus.Unsubscribe(sub)
package event
