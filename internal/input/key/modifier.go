package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt  // Option on macOS
	ModMeta // Cmd on macOS, the Windows key elsewhere
)

// commandMods are the modifiers that turn a key into an application or
// browser shortcut. Shift is not one of them.
const commandMods = ModCtrl | ModAlt | ModMeta

// modOrder is the order modifiers appear in key strings and String.
var modOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

// modAliases maps lower-case names accepted in key strings.
var modAliases = map[string]Modifier{
	"c": ModCtrl, "ctrl": ModCtrl, "control": ModCtrl,
	"a": ModAlt, "alt": ModAlt, "option": ModAlt,
	"s": ModShift, "shift": ModShift,
	"m": ModMeta, "meta": ModMeta, "cmd": ModMeta, "super": ModMeta,
}

func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }
func (m Modifier) HasShift() bool        { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool         { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool          { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool         { return m.Has(ModMeta) }

// HasCommand reports whether Ctrl, Alt or Meta is held.
func (m Modifier) HasCommand() bool { return m.Has(commandMods) }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// String joins the held modifiers with "+", for example "Ctrl+Shift".
func (m Modifier) String() string {
	var b strings.Builder
	for _, o := range modOrder {
		if !m.Has(o.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(o.name)
	}
	return b.String()
}

// ModifierFromName looks up a modifier name, ignoring case and
// surrounding space. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	return modAliases[strings.ToLower(strings.TrimSpace(name))]
}
