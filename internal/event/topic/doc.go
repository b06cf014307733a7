// Package topic provides hierarchical topic names and wildcard matching for
// the map event bus.
//
// # Topic Format
//
// Raw keyboard topics are single segments named after the DOM event types.
// Map state topics use dot notation:
//
//	keydown
//	keypress
//	keyup
//	map.move
//	map.zoom
//	overlay.open
//	overlay.close
//
// # Wildcards
//
//   - "*" matches exactly one segment
//   - "**" matches zero or more segments
//
// Examples:
//
//	map.*        matches map.move, map.zoom
//	overlay.**   matches overlay.open, overlay.close
//	**           matches everything
package topic
