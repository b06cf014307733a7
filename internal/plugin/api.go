package plugin

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/slippy/internal/event"
	"github.com/dshills/slippy/internal/event/topic"
	"github.com/dshills/slippy/internal/geo"
)

// module builds the map table exposed to the script.
func (s *script) module() *lua.LTable {
	mod := s.L.NewTable()
	s.L.SetFuncs(mod, map[string]lua.LGFunction{
		"on":       s.on,
		"off":      s.off,
		"pan_by":   s.panBy,
		"set_zoom": s.setZoom,
		"zoom":     s.zoom,
		"center":   s.center,
		"log":      s.log,
	})
	return mod
}

// on(topic, fn) -> id
func (s *script) on(L *lua.LState) int {
	pattern := topic.Topic(L.CheckString(1))
	fn := L.CheckFunction(2)

	if !pattern.IsValid() {
		L.ArgError(1, fmt.Sprintf("invalid topic %q", pattern))
		return 0
	}
	if s.host.bus == nil {
		L.RaiseError("no event bus")
		return 0
	}

	sub, err := s.host.bus.SubscribeFunc(pattern, func(ctx context.Context, e any) error {
		if err := s.call(ctx, fn, eventTable(s.L, e)); err != nil {
			return &ScriptError{Plugin: s.name, Err: err}
		}
		return nil
	}, event.WithPriority(event.PriorityNormal))
	if err != nil {
		L.RaiseError("subscribe %s: %v", pattern, err)
		return 0
	}

	s.subs[sub.ID()] = sub
	L.Push(lua.LString(sub.ID()))
	return 1
}

// off(id) -> bool
func (s *script) off(L *lua.LState) int {
	id := L.CheckString(1)
	sub, ok := s.subs[id]
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	delete(s.subs, id)
	L.Push(lua.LBool(s.host.bus.Unsubscribe(sub) == nil))
	return 1
}

// pan_by(x, y)
func (s *script) panBy(L *lua.LState) int {
	offset := geo.Pt(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)))
	if err := s.requireMap(L).PanBy(offset); err != nil {
		L.RaiseError("pan_by: %v", err)
	}
	return 0
}

// set_zoom(z)
func (s *script) setZoom(L *lua.LState) int {
	level := float64(L.CheckNumber(1))
	if err := s.requireMap(L).SetZoom(level); err != nil {
		L.RaiseError("set_zoom: %v", err)
	}
	return 0
}

// zoom() -> number
func (s *script) zoom(L *lua.LState) int {
	L.Push(lua.LNumber(s.requireMap(L).Zoom()))
	return 1
}

// center() -> lat, lng
func (s *script) center(L *lua.LState) int {
	c := s.requireMap(L).Center()
	L.Push(lua.LNumber(c.Lat))
	L.Push(lua.LNumber(c.Lng))
	return 2
}

// log(msg)
func (s *script) log(L *lua.LState) int {
	s.host.logger.Info(L.CheckString(1), "plugin", s.name)
	return 0
}

func (s *script) requireMap(L *lua.LState) MapAPI {
	if s.host.mapAPI == nil {
		L.RaiseError("no map attached")
	}
	return s.host.mapAPI
}
