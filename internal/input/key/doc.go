// Package key provides keyboard key identifiers, modifiers and key events
// for the map input system.
//
// The package defines:
//
//   - Key: identifies a keyboard key (special keys, arrows, keypad or a rune)
//   - Modifier: a bit set of Shift, Ctrl, Alt and Meta
//   - Event: one key with its rune and modifiers
//   - ID: the modifier-free identity of a key, used as a binding table key
//
// # Key Strings
//
// Bindings in configuration files are written as key strings:
//
//   - Simple keys: "a", "+", "-", "=", "Up", "Escape"
//   - Keypad keys: "KP+", "KP-"
//   - With modifiers: "Shift+Up", "<S-Up>", "Ctrl+="
//
// # Key Codes
//
// Hosts that deliver legacy numeric key codes (37 for ArrowLeft, 27 for
// Escape, 171 for "+" and so on) convert them with FromKeyCode.
package key
