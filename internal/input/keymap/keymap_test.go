package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/slippy/internal/geo"
	"github.com/dshills/slippy/internal/input/key"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(DefaultOptions(), DefaultBindings())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestResolveDefaults(t *testing.T) {
	table := defaultTable(t)

	tests := []struct {
		name  string
		event key.Event
		kind  Kind
	}{
		{"up", key.NewSpecialEvent(key.KeyUp, key.ModNone), KindPanNorth},
		{"down", key.NewSpecialEvent(key.KeyDown, key.ModNone), KindPanSouth},
		{"left", key.NewSpecialEvent(key.KeyLeft, key.ModNone), KindPanWest},
		{"right", key.NewSpecialEvent(key.KeyRight, key.ModNone), KindPanEast},
		{"plus", key.NewRuneEvent('+', key.ModShift), KindZoomIn},
		{"equals", key.NewRuneEvent('=', key.ModNone), KindZoomIn},
		{"keypad plus", key.NewSpecialEvent(key.KeyKPAdd, key.ModNone), KindZoomIn},
		{"minus", key.NewRuneEvent('-', key.ModNone), KindZoomOut},
		{"keypad minus", key.NewSpecialEvent(key.KeyKPSubtract, key.ModNone), KindZoomOut},
		{"escape", key.NewSpecialEvent(key.KeyEscape, key.ModNone), KindDismissOverlay},
		{"keycode up", key.FromKeyCode(key.CodeArrowUp, key.ModNone), KindPanNorth},
		{"keycode plus", key.FromKeyCode(key.CodePlus, key.ModNone), KindZoomIn},
		{"keycode minus", key.FromKeyCode(key.CodeMinus, key.ModNone), KindZoomOut},
		{"keycode esc", key.FromKeyCode(key.CodeEscape, key.ModNone), KindDismissOverlay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := table.Resolve(tt.event)
			if !ok {
				t.Fatalf("Resolve(%v) found nothing", tt.event)
			}
			if action.Kind != tt.kind {
				t.Errorf("Resolve(%v).Kind = %v, want %v", tt.event, action.Kind, tt.kind)
			}
		})
	}
}

func TestResolveUnknownKey(t *testing.T) {
	table := defaultTable(t)
	for _, ev := range []key.Event{
		key.NewRuneEvent('a', key.ModNone),
		key.FromKeyCode(65, key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		key.NewSpecialEvent(key.KeyNone, key.ModNone),
	} {
		if action, ok := table.Resolve(ev); ok {
			t.Errorf("Resolve(%v) = %v, want none", ev, action)
		}
	}
}

func TestActionMagnitudes(t *testing.T) {
	table := defaultTable(t)

	up, _ := table.Resolve(key.NewSpecialEvent(key.KeyUp, key.ModNone))
	if got := up.Offset(1); got != geo.Pt(0, -80) {
		t.Errorf("up offset = %v, want (0, -80)", got)
	}
	right, _ := table.Resolve(key.NewSpecialEvent(key.KeyRight, key.ModNone))
	if got := right.Offset(3); got != geo.Pt(240, 0) {
		t.Errorf("right offset x3 = %v, want (240, 0)", got)
	}
	in, _ := table.Resolve(key.NewRuneEvent('+', key.ModNone))
	if in.Delta != 1 {
		t.Errorf("zoom in delta = %v, want 1", in.Delta)
	}
	out, _ := table.Resolve(key.NewRuneEvent('-', key.ModNone))
	if out.Delta != -1 {
		t.Errorf("zoom out delta = %v, want -1", out.Delta)
	}
}

func TestCustomOptions(t *testing.T) {
	table, err := NewTable(Options{PanDistance: 200, ZoomDelta: 0.5}, DefaultBindings())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	west, _ := table.Resolve(key.NewSpecialEvent(key.KeyLeft, key.ModNone))
	if got := west.Offset(1); got != geo.Pt(-200, 0) {
		t.Errorf("west offset = %v, want (-200, 0)", got)
	}
	out, _ := table.Resolve(key.NewRuneEvent('-', key.ModNone))
	if out.Delta != -0.5 {
		t.Errorf("zoom out delta = %v, want -0.5", out.Delta)
	}
}

func TestNonPositiveOptionsUseDefaults(t *testing.T) {
	table, err := NewTable(Options{}, DefaultBindings())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if got := table.Options(); got != DefaultOptions() {
		t.Errorf("Options() = %+v, want %+v", got, DefaultOptions())
	}
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings []Binding
		want     error
	}{
		{"empty keys", []Binding{{Keys: "", Kind: KindZoomIn}}, ErrEmptyKeys},
		{"no action", []Binding{{Keys: "z", Kind: KindNone}}, ErrUnknownAction},
		{"bad key", []Binding{{Keys: "Hyper+z", Kind: KindZoomIn}}, key.ErrInvalidKey},
		{"conflict", []Binding{
			{Keys: "z", Kind: KindZoomIn},
			{Keys: "z", Kind: KindZoomOut},
		}, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(DefaultOptions(), tt.bindings)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewTable() error = %v, want %v", err, tt.want)
			}
			var be *BindingError
			if !errors.As(err, &be) {
				t.Errorf("error %v is not a *BindingError", err)
			}
		})
	}
}

func TestDuplicateIdenticalBindingAccepted(t *testing.T) {
	table, err := NewTable(DefaultOptions(), []Binding{
		{Keys: "Up", Kind: KindPanNorth},
		{Keys: "<Up>", Kind: KindPanNorth},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if table.Len() != 1 || len(table.Bindings()) != 1 {
		t.Errorf("Len() = %d, Bindings() = %d, want 1 and 1", table.Len(), len(table.Bindings()))
	}
}

func TestParseKind(t *testing.T) {
	for kind, name := range kindNames {
		if kind == KindNone {
			continue
		}
		got, err := ParseKind(name)
		if err != nil || got != kind {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, err, kind)
		}
	}
	if _, err := ParseKind("PAN.NORTH"); err != nil {
		t.Errorf("ParseKind should be case-insensitive: %v", err)
	}
	if _, err := ParseKind("none"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ParseKind(none) error = %v, want ErrUnknownAction", err)
	}
}

func TestMergeBindings(t *testing.T) {
	merged, err := MergeBindings(DefaultBindings(), map[string][]string{
		"pan.north": {"k", "Up"},
		"zoom.out":  {},
	})
	if err != nil {
		t.Fatalf("MergeBindings() error = %v", err)
	}
	table, err := NewTable(DefaultOptions(), merged)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	if a, ok := table.Resolve(key.NewRuneEvent('k', key.ModNone)); !ok || a.Kind != KindPanNorth {
		t.Errorf("k should pan north, got %v %v", a, ok)
	}
	if _, ok := table.Resolve(key.NewRuneEvent('-', key.ModNone)); ok {
		t.Error("zoom.out was unbound but '-' still resolves")
	}
	if a, ok := table.Resolve(key.NewSpecialEvent(key.KeyLeft, key.ModNone)); !ok || a.Kind != KindPanWest {
		t.Error("untouched pan.west binding was lost")
	}
}

func TestMergeBindingsUnknownAction(t *testing.T) {
	_, err := MergeBindings(DefaultBindings(), map[string][]string{"pan.up": {"k"}})
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("MergeBindings() error = %v, want ErrUnknownAction", err)
	}
}

func TestKindHelpers(t *testing.T) {
	if !KindPanEast.IsPan() || KindZoomIn.IsPan() {
		t.Error("IsPan misclassifies kinds")
	}
	if !KindZoomOut.IsZoom() || KindDismissOverlay.IsZoom() {
		t.Error("IsZoom misclassifies kinds")
	}
	if KindDismissOverlay.Direction() != (geo.Point{}) || KindDismissOverlay.Sign() != 0 {
		t.Error("dismiss should have no direction or sign")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}
