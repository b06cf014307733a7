// Package keyboard implements keyboard navigation for the map.
//
// A Controller sits between the map container and the map facade. It
// relays every keydown, keypress and keyup that reaches the container to
// the event bus, and, while it is enabled and the container holds focus,
// resolves keydown events through a keymap.Table and drives the map:
//
//	Arrow keys   pan by the configured distance
//	+ = KP+      zoom in by the configured delta
//	- KP-        zoom out
//	Escape       dismiss the open popup, if it allows it
//
// Ctrl, Alt and Meta chords are left to the host. Shift multiplies the
// pan distance and zoom delta.
//
// States:
//
//	Disabled --Enable--> Enabled/Unfocused --focus--> Enabled/Focused
//	   ^                        ^                          |
//	   +------Disable-----------+-----------blur-----------+
//
// The document keydown listener exists only in Enabled/Focused and is
// added and removed exactly once per transition.
package keyboard
