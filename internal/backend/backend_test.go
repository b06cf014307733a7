package backend

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/slippy/internal/dom"
	"github.com/dshills/slippy/internal/geo"
	"github.com/dshills/slippy/internal/input/key"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func row(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

// poll returns the next event that is not a resize.
func poll(t *testing.T, term *Terminal) tcell.Event {
	t.Helper()
	for i := 0; i < 5; i++ {
		ev := term.PollEvent()
		if _, ok := ev.(*tcell.EventResize); !ok {
			return ev
		}
	}
	t.Fatal("only resize events queued")
	return nil
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
		ok   bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyUp, key.ModNone), true},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyLeft, key.ModShift), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEscape, key.ModNone), true},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), key.NewRuneEvent('+', key.ModNone), true},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone), key.NewRuneEvent('K', key.ModShift), true},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), key.NewRuneEvent('x', key.ModAlt), true},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), key.NewRuneEvent('c', key.ModCtrl), true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyTab, key.ModNone), true},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyTab, key.ModShift), true},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), key.Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyEvent(tt.ev)
			if ok != tt.ok {
				t.Fatalf("KeyEvent() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equals(tt.want) {
				t.Errorf("KeyEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate_KeySequence(t *testing.T) {
	tests := []struct {
		name  string
		ev    tcell.Event
		types []dom.EventType
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), []dom.EventType{dom.KeyDown, dom.KeyPress, dom.KeyUp}},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), []dom.EventType{dom.KeyDown, dom.KeyUp}},
		{"focus", tcell.NewEventFocus(true), []dom.EventType{dom.Focus}},
		{"blur", tcell.NewEventFocus(false), []dom.EventType{dom.Blur}},
		{"unmapped key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), nil},
		{"resize", tcell.NewEventResize(80, 24), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.ev)
			if len(got) != len(tt.types) {
				t.Fatalf("Translate() returned %d events, want %d", len(got), len(tt.types))
			}
			for i, ev := range got {
				if ev.Type != tt.types[i] {
					t.Errorf("event %d type = %v, want %v", i, ev.Type, tt.types[i])
				}
				if !ev.Trusted {
					t.Errorf("event %d Trusted = false, want true", i)
				}
			}
		})
	}
}

func TestTranslate_KeyCarried(t *testing.T) {
	evs := Translate(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift))
	for _, ev := range evs {
		if ev.Key.Key != key.KeyDown || !ev.Key.Modifiers.HasShift() {
			t.Errorf("%v key = %v, want S-Down", ev.Type, ev.Key)
		}
	}
}

func TestTerminal_PostAndPoll(t *testing.T) {
	term, sim := newSimTerminal(t, 20, 5)

	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	ev, ok := poll(t, term).(*tcell.EventKey)
	if !ok {
		t.Fatalf("PollEvent() = %T, want *tcell.EventKey", ev)
	}
	if ev.Key() != tcell.KeyUp {
		t.Errorf("Key() = %v, want KeyUp", ev.Key())
	}

	if err := term.Interrupt("reload"); err != nil {
		t.Fatalf("Interrupt() error = %v", err)
	}
	ie, ok := poll(t, term).(*tcell.EventInterrupt)
	if !ok {
		t.Fatalf("PollEvent() = %T, want *tcell.EventInterrupt", ie)
	}
	if ie.Data() != "reload" {
		t.Errorf("Data() = %v, want reload", ie.Data())
	}
}

func TestTerminal_DrawStatus(t *testing.T) {
	term, sim := newSimTerminal(t, 60, 10)

	term.Draw(View{
		Center:  geo.LatLng{Lat: 51.5, Lng: -0.12},
		Zoom:    5,
		State:   "enabled-focused",
		Message: "ready",
	})

	status := row(sim, 9)
	for _, want := range []string{"51.50000, -0.12000", "z5.00", "enabled-focused", "ready"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q does not contain %q", status, want)
		}
	}

	if got := []rune(row(sim, 4))[30]; got != '+' {
		t.Errorf("marker = %q, want '+'", got)
	}
}

func TestTerminal_DrawGridMoves(t *testing.T) {
	term, sim := newSimTerminal(t, 64, 17)
	snapshot := func() string {
		var b strings.Builder
		for y := 0; y < 16; y++ {
			b.WriteString(row(sim, y))
		}
		return b.String()
	}

	term.Draw(View{Zoom: 3})
	before := snapshot()
	if !strings.ContainsRune(before, tcell.RuneVLine) && !strings.ContainsRune(before, tcell.RuneHLine) {
		t.Fatal("grid has no tile boundaries")
	}

	c := geo.Unproject(geo.Project(geo.LatLng{}, 3).Add(geo.Pt(40, 0)), 3)
	term.Draw(View{Center: c, Zoom: 3})
	if after := snapshot(); after == before {
		t.Error("grid did not move after panning")
	}
}

func TestTerminal_DrawPopup(t *testing.T) {
	term, sim := newSimTerminal(t, 40, 12)

	term.Draw(View{Popup: "Null Island"})

	found := false
	for y := 0; y < 11; y++ {
		if strings.Contains(row(sim, y), "Null Island") {
			found = true
		}
	}
	if !found {
		t.Error("popup content not drawn")
	}
}
