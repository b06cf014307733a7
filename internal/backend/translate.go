package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/slippy/internal/dom"
	"github.com/dshills/slippy/internal/input/key"
)

// Translate converts a terminal event into trusted document events.
// It returns nil for events the document has no counterpart for.
//
// A key press yields keydown, keypress and keyup. Keypress is only
// produced for character keys.
func Translate(ev tcell.Event) []*dom.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := KeyEvent(e)
		if !ok {
			return nil
		}
		out := []*dom.Event{trusted(dom.NewKeyEvent(dom.KeyDown, k))}
		if k.IsRune() {
			out = append(out, trusted(dom.NewKeyEvent(dom.KeyPress, k)))
		}
		return append(out, trusted(dom.NewKeyEvent(dom.KeyUp, k)))

	case *tcell.EventFocus:
		typ := dom.Blur
		if e.Focused {
			typ = dom.Focus
		}
		return []*dom.Event{trusted(dom.NewEvent(typ))}

	default:
		return nil
	}
}

func trusted(ev *dom.Event) *dom.Event {
	ev.Trusted = true
	return ev
}

// KeyEvent converts a tcell key event. It returns false for keys with no
// equivalent.
func KeyEvent(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		return key.NewRuneEvent(r, mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	case tcell.KeyCtrlSpace:
		return key.NewRuneEvent(' ', mods.With(key.ModCtrl)), true
	}

	// Control characters that share a code with Tab, Enter and Backspace
	// are handled above.
	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
