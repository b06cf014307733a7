package key

import (
	"strings"
	"unicode"
)

// Event is one key press as delivered by the terminal.
type Event struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier

	// Repeat marks an auto-repeat of a held key.
	Repeat bool
}

// ID is the modifier-free identity of a key. Bindings are looked up by ID
// so a held Shift does not change which action a key maps to.
type ID struct {
	Key  Key
	Rune rune
}

// String gives the form used in key strings, "Space" for the space bar.
func (id ID) String() string {
	switch {
	case id.Key != KeyRune:
		return id.Key.String()
	case id.Rune == ' ':
		return "Space"
	}
	return string(id.Rune)
}

func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Modifiers: mods}
}

func NewRuneEvent(r rune, mods Modifier) Event { return NewEvent(KeyRune, r, mods) }

func NewSpecialEvent(k Key, mods Modifier) Event { return NewEvent(k, 0, mods) }

// ID folds letters to lower case, so 'A' and 'a' share an identity.
func (e Event) ID() ID {
	if e.Key != KeyRune {
		return ID{Key: e.Key}
	}
	return ID{Key: KeyRune, Rune: unicode.ToLower(e.Rune)}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Equals compares key, rune and modifiers. Repeat is ignored.
func (e Event) Equals(o Event) bool {
	return e.Key == o.Key && e.Rune == o.Rune && e.Modifiers == o.Modifiers
}

// String renders e as "Up", "S-Up" or "C-=". Shift is left out for runes
// because the rune already shows it.
func (e Event) String() string {
	var b strings.Builder
	for _, p := range []struct {
		mod    Modifier
		prefix string
	}{{ModCtrl, "C-"}, {ModAlt, "A-"}, {ModMeta, "M-"}} {
		if e.Modifiers.Has(p.mod) {
			b.WriteString(p.prefix)
		}
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		b.WriteString("S-")
	}
	if e.Key == KeyRune {
		b.WriteString(ID{Key: KeyRune, Rune: e.Rune}.String())
	} else {
		b.WriteString(e.Key.String())
	}
	return b.String()
}
