// Package keymap maps keys to semantic map actions.
//
// A Table is built once from a set of bindings and pan/zoom magnitudes and
// never changes afterwards. Lookup is a pure function of the key identity:
//
//	table, err := keymap.NewTable(keymap.DefaultOptions(), keymap.DefaultBindings())
//	if err != nil {
//	    return err
//	}
//	if action, ok := table.Resolve(ev); ok {
//	    // dispatch action.Kind
//	}
//
// # Action Names
//
// Configuration files refer to actions by name:
//
//	pan.north  pan.south  pan.east  pan.west
//	zoom.in    zoom.out   overlay.dismiss
//
// # Default Bindings
//
//	Up            pan.north
//	Down          pan.south
//	Left          pan.west
//	Right         pan.east
//	+ = KP+       zoom.in
//	- KP-         zoom.out
//	Escape        overlay.dismiss
package keymap
