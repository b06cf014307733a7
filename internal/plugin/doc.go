// Package plugin runs Lua feature layers against the map.
//
// Each script runs in its own sandboxed gopher-lua state with only the
// base, table, string and math libraries. A script sees one global table,
// map:
//
//	map.on(topic, fn)    subscribe fn to a bus topic ("keydown", "map.*", ...)
//	map.off(id)          remove a subscription
//	map.pan_by(x, y)     pan by a pixel offset
//	map.set_zoom(z)      set the zoom level
//	map.zoom()           current zoom level
//	map.center()         current center as lat, lng
//	map.log(msg)         write to the application log
//
// Handlers receive the event as a table whose "type" field is the topic.
// Raw key events reach scripts whether or not keyboard navigation is
// enabled.
//
// A Host is not safe for concurrent use. Bus events must be published on
// the goroutine that owns the Host.
package plugin
