package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		ks   string
		key  Key
		r    rune
		mods Modifier
	}{
		{"a", KeyRune, 'a', ModNone},
		{"A", KeyRune, 'A', ModShift},
		{"+", KeyRune, '+', ModNone},
		{"-", KeyRune, '-', ModNone},
		{"=", KeyRune, '=', ModNone},
		{"Up", KeyUp, 0, ModNone},
		{"ArrowLeft", KeyLeft, 0, ModNone},
		{"Escape", KeyEscape, 0, ModNone},
		{"KP+", KeyKPAdd, 0, ModNone},
		{"kp-", KeyKPSubtract, 0, ModNone},
		{"Shift+Up", KeyUp, 0, ModShift},
		{"Ctrl+=", KeyRune, '=', ModCtrl},
		{"Ctrl++", KeyRune, '+', ModCtrl},
		{"Ctrl+Shift+Right", KeyRight, 0, ModCtrl | ModShift},
		{"<S-Up>", KeyUp, 0, ModShift},
		{"<Esc>", KeyEscape, 0, ModNone},
		{"<C-->", KeyRune, '-', ModCtrl},
		{"<->", KeyRune, '-', ModNone},
		{"<Plus>", KeyRune, '+', ModNone},
		{"<Space>", KeyRune, ' ', ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.ks, func(t *testing.T) {
			ev, err := Parse(tt.ks)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.ks, err)
			}
			if ev.Key != tt.key || ev.Rune != tt.r || ev.Modifiers != tt.mods {
				t.Errorf("Parse(%q) = %#v, want key=%v rune=%q mods=%v", tt.ks, ev, tt.key, tt.r, tt.mods)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		ks   string
		want error
	}{
		{"", ErrEmptyKey},
		{"   ", ErrEmptyKey},
		{"<S-Up", ErrUnmatchedBracket},
		{"Hyper+Up", ErrInvalidKey},
		{"<Q-Up>", ErrInvalidKey},
		{"Shift+Nowhere", ErrInvalidKey},
		{"banana", ErrInvalidKey},
	}

	for _, tt := range tests {
		_, err := Parse(tt.ks)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.ks, err, tt.want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on an invalid key string")
		}
	}()
	MustParse("Hyper+Up")
}
