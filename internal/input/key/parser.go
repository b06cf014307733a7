package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptyKey         = errors.New("empty key string")
	ErrInvalidKey       = errors.New("invalid key string")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key string")
)

// Parse parses a key string string into an Event.
//
// Supported formats:
//   - Single character: "a", "+", "-", "="
//   - Key names: "Up", "ArrowUp", "Escape", "Esc", "KP+", "KP-"
//   - With modifiers: "Shift+Up", "Ctrl+=", "Ctrl++"
//   - Vim-style: "<S-Up>", "<C-=>", "<Esc>", "<C-->"
func Parse(ks string) (Event, error) {
	ks = strings.TrimSpace(ks)
	if ks == "" {
		return Event{}, ErrEmptyKey
	}

	if strings.HasPrefix(ks, "<") && len(ks) > 1 {
		if !strings.HasSuffix(ks, ">") {
			return Event{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, ks)
		}
		return parseDelimited(ks[1:len(ks)-1], "-", vimModifier)
	}

	// Names that contain a separator ("KP+") win over modifier parsing
	if k := KeyFromName(ks); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}
	if len([]rune(ks)) == 1 {
		return parseKey(ks, ModNone)
	}

	if strings.Contains(ks, "+") {
		return parseDelimited(ks, "+", ModifierFromName)
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidKey, ks)
}

// vimModifier maps a single Vim modifier letter.
func vimModifier(p string) Modifier {
	switch strings.ToLower(p) {
	case "c":
		return ModCtrl
	case "a":
		return ModAlt
	case "s":
		return ModShift
	case "m", "d":
		return ModMeta
	}
	return ModNone
}

// parseDelimited parses "mod<sep>mod<sep>key". A doubled trailing
// separator names the separator character itself ("Ctrl++", "C--").
func parseDelimited(inner, sep string, modFn func(string) Modifier) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidKey
	}

	var keyPart, modPart string
	switch {
	case inner == sep:
		keyPart = sep
	case strings.HasSuffix(inner, sep+sep):
		keyPart = sep
		modPart = strings.TrimSuffix(inner, sep+sep)
	default:
		idx := strings.LastIndex(inner, sep)
		if idx < 0 {
			keyPart = inner
		} else {
			keyPart = inner[idx+1:]
			modPart = inner[:idx]
		}
	}

	var mods Modifier
	if modPart != "" {
		for _, p := range strings.Split(modPart, sep) {
			mod := modFn(strings.TrimSpace(p))
			if mod == ModNone {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidKey, p)
			}
			mods = mods.With(mod)
		}
	}

	return parseKey(keyPart, mods)
}

// parseKey parses a key name or single character with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidKey
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "plus":
		return NewRuneEvent('+', mods), nil
	case "minus":
		return NewRuneEvent('-', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidKey, keyPart)
	}
	r := runes[0]
	if unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	if mods.HasCtrl() {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}

// MustParse parses a key string and panics on error.
// Use only for known-valid key strings in initialization code.
func MustParse(ks string) Event {
	event, err := Parse(ks)
	if err != nil {
		panic("invalid key string: " + ks + ": " + err.Error())
	}
	return event
}
