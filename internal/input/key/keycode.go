package key

// Legacy DOM key codes. Firefox reports 171/173 for the +/- keys, other
// engines report 187/189 (and 61 for "=").
const (
	CodeEscape     = 27
	CodeArrowLeft  = 37
	CodeArrowUp    = 38
	CodeArrowRight = 39
	CodeArrowDown  = 40
	CodeEquals     = 61
	CodeKPAdd      = 107
	CodeKPSubtract = 109
	CodePlus       = 171
	CodeMinus      = 173
	CodeEqualsAlt  = 187
	CodeMinusAlt   = 189
)

var keyCodes = map[int]ID{
	8:              {Key: KeyBackspace},
	9:              {Key: KeyTab},
	13:             {Key: KeyEnter},
	CodeEscape:     {Key: KeyEscape},
	32:             {Key: KeyRune, Rune: ' '},
	33:             {Key: KeyPageUp},
	34:             {Key: KeyPageDown},
	35:             {Key: KeyEnd},
	36:             {Key: KeyHome},
	CodeArrowLeft:  {Key: KeyLeft},
	CodeArrowUp:    {Key: KeyUp},
	CodeArrowRight: {Key: KeyRight},
	CodeArrowDown:  {Key: KeyDown},
	45:             {Key: KeyInsert},
	46:             {Key: KeyDelete},
	CodeEquals:     {Key: KeyRune, Rune: '='},
	CodeKPAdd:      {Key: KeyKPAdd},
	CodeKPSubtract: {Key: KeyKPSubtract},
	CodePlus:       {Key: KeyRune, Rune: '+'},
	CodeMinus:      {Key: KeyRune, Rune: '-'},
	CodeEqualsAlt:  {Key: KeyRune, Rune: '='},
	CodeMinusAlt:   {Key: KeyRune, Rune: '-'},
}

// FromKeyCode converts a legacy DOM key code into a key event.
// Codes 48-57 map to digits and 65-90 to lower-case letters.
// Unknown codes yield an event with KeyNone.
func FromKeyCode(code int, mods Modifier) Event {
	switch {
	case code >= '0' && code <= '9':
		return NewRuneEvent(rune(code), mods)
	case code >= 'A' && code <= 'Z':
		r := rune(code - 'A' + 'a')
		if mods.HasShift() {
			r = rune(code)
		}
		return NewRuneEvent(r, mods)
	}
	if id, ok := keyCodes[code]; ok {
		return NewEvent(id.Key, id.Rune, mods)
	}
	return NewSpecialEvent(KeyNone, mods)
}
