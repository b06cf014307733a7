package plugin

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/events"
	"github.com/dshills/slippy/internal/input/key"
)

// eventTable converts a bus event to the table passed to Lua handlers.
func eventTable(L *lua.LState, e any) *lua.LTable {
	tbl := L.NewTable()
	if tp, ok := e.(event.TopicProvider); ok {
		tbl.RawSetString("type", lua.LString(tp.EventTopic()))
	}

	switch ev := e.(type) {
	case event.Event[events.KeyPayload]:
		setKey(tbl, ev.Payload.Key)
		tbl.RawSetString("trusted", lua.LBool(ev.Payload.Trusted))

	case event.Event[events.MovePayload]:
		p := ev.Payload
		tbl.RawSetString("lat", lua.LNumber(p.To.Lat))
		tbl.RawSetString("lng", lua.LNumber(p.To.Lng))
		tbl.RawSetString("from_lat", lua.LNumber(p.From.Lat))
		tbl.RawSetString("from_lng", lua.LNumber(p.From.Lng))
		tbl.RawSetString("dx", lua.LNumber(p.Offset.X))
		tbl.RawSetString("dy", lua.LNumber(p.Offset.Y))

	case event.Event[events.ZoomPayload]:
		tbl.RawSetString("zoom", lua.LNumber(ev.Payload.To))
		tbl.RawSetString("from", lua.LNumber(ev.Payload.From))

	case event.Event[events.OverlayPayload]:
		tbl.RawSetString("id", lua.LString(ev.Payload.ID))
		tbl.RawSetString("content", lua.LString(ev.Payload.Content))
		if ev.Payload.Reason != "" {
			tbl.RawSetString("reason", lua.LString(ev.Payload.Reason))
		}

	case event.Event[events.ConfigReloadedPayload]:
		tbl.RawSetString("path", lua.LString(ev.Payload.Path))
	}
	return tbl
}

func setKey(tbl *lua.LTable, k key.Event) {
	tbl.RawSetString("key", lua.LString(k.ID().String()))
	if k.IsRune() {
		tbl.RawSetString("rune", lua.LString(string(k.Rune)))
	}
	tbl.RawSetString("shift", lua.LBool(k.Modifiers.HasShift()))
	tbl.RawSetString("ctrl", lua.LBool(k.Modifiers.HasCtrl()))
	tbl.RawSetString("alt", lua.LBool(k.Modifiers.HasAlt()))
	tbl.RawSetString("meta", lua.LBool(k.Modifiers.HasMeta()))
	tbl.RawSetString("repeat", lua.LBool(k.Repeat))
}
