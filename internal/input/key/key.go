package key

import (
	"strconv"
	"strings"
)

// Key identifies a physical key. Character keys are all KeyRune; the
// character itself travels in Event.Rune.
type Key uint16

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyKPAdd
	KeyKPSubtract
	KeyKPEnter
	KeyRune

	keyCount
)

// keyNames holds the display name of each key followed by the extra
// lower-case aliases accepted in key strings.
var keyNames = [keyCount][]string{
	KeyNone:       {"None"},
	KeyEscape:     {"Escape", "esc"},
	KeyEnter:      {"Enter", "return", "cr"},
	KeyTab:        {"Tab"},
	KeyBackspace:  {"Backspace", "bs"},
	KeyDelete:     {"Delete", "del"},
	KeyInsert:     {"Insert", "ins"},
	KeyHome:       {"Home"},
	KeyEnd:        {"End"},
	KeyPageUp:     {"PageUp", "pgup"},
	KeyPageDown:   {"PageDown", "pgdn"},
	KeyUp:         {"Up", "arrowup"},
	KeyDown:       {"Down", "arrowdown"},
	KeyLeft:       {"Left", "arrowleft"},
	KeyRight:      {"Right", "arrowright"},
	KeyKPAdd:      {"KP+", "kpadd"},
	KeyKPSubtract: {"KP-", "kpsubtract"},
	KeyKPEnter:    {"KPEnter"},
	KeyRune:       {"Rune"},
}

var keyByName = func() map[string]Key {
	m := make(map[string]Key)
	// None and Rune are not nameable in key strings.
	for k := KeyEscape; k < KeyRune; k++ {
		for _, n := range keyNames[k] {
			m[strings.ToLower(n)] = k
		}
	}
	return m
}()

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k][0]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// KeyFromName looks up a special key by name or alias, ignoring case and
// surrounding space. Unknown names give KeyNone.
func KeyFromName(name string) Key {
	return keyByName[strings.ToLower(strings.TrimSpace(name))]
}
