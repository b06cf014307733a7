package keymap

import (
	"github.com/dshills/slippy/internal/input/key"
)

// Default magnitudes.
const (
	DefaultPanDistance = 80
	DefaultZoomDelta   = 1
)

// Options holds the magnitudes applied to resolved actions.
type Options struct {
	// PanDistance is the pan offset in pixels.
	PanDistance float64

	// ZoomDelta is the absolute zoom change per key press.
	ZoomDelta float64
}

// DefaultOptions returns an 80 pixel pan distance and a zoom delta of 1.
func DefaultOptions() Options {
	return Options{
		PanDistance: DefaultPanDistance,
		ZoomDelta:   DefaultZoomDelta,
	}
}

// Table is an immutable key-to-action lookup table.
type Table struct {
	opts     Options
	actions  map[key.ID]Action
	bindings []Binding
}

// NewTable builds a table from bindings. Non-positive magnitudes fall back
// to the defaults. Binding the same key to two different actions is an error;
// repeating an identical binding is not.
func NewTable(opts Options, bindings []Binding) (*Table, error) {
	if opts.PanDistance <= 0 {
		opts.PanDistance = DefaultPanDistance
	}
	if opts.ZoomDelta <= 0 {
		opts.ZoomDelta = DefaultZoomDelta
	}

	t := &Table{
		opts:     opts,
		actions:  make(map[key.ID]Action, len(bindings)),
		bindings: make([]Binding, 0, len(bindings)),
	}

	for _, b := range bindings {
		if b.Keys == "" {
			return nil, &BindingError{Keys: b.Keys, Kind: b.Kind, Err: ErrEmptyKeys}
		}
		if b.Kind == KindNone {
			return nil, &BindingError{Keys: b.Keys, Kind: b.Kind, Err: ErrUnknownAction}
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, &BindingError{Keys: b.Keys, Kind: b.Kind, Err: err}
		}

		id := ev.ID()
		if existing, ok := t.actions[id]; ok {
			if existing.Kind != b.Kind {
				return nil, &BindingError{Keys: b.Keys, Kind: b.Kind, Err: ErrConflict}
			}
			continue
		}

		t.actions[id] = t.action(b.Kind)
		t.bindings = append(t.bindings, b)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error.
// Use only with bindings known to be valid.
func MustTable(opts Options, bindings []Binding) *Table {
	t, err := NewTable(opts, bindings)
	if err != nil {
		panic(err)
	}
	return t
}

// action builds the Action for a kind using the table magnitudes.
func (t *Table) action(kind Kind) Action {
	a := Action{Kind: kind}
	switch {
	case kind.IsPan():
		a.Direction = kind.Direction()
		a.Distance = t.opts.PanDistance
	case kind.IsZoom():
		a.Delta = kind.Sign() * t.opts.ZoomDelta
	}
	return a
}

// Resolve returns the action bound to the event's key.
// Modifiers are not part of the lookup.
func (t *Table) Resolve(ev key.Event) (Action, bool) {
	a, ok := t.actions[ev.ID()]
	return a, ok
}

// Options returns the magnitudes the table was built with.
func (t *Table) Options() Options {
	return t.opts
}

// Bindings returns a copy of the accepted bindings in insertion order.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Len returns the number of bound keys.
func (t *Table) Len() int {
	return len(t.actions)
}
