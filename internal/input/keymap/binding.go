package keymap

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned while building tables.
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyKeys     = errors.New("binding has no keys")
	ErrConflict      = errors.New("key bound to more than one action")
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key string that triggers this binding.
	// Formats: "Up", "+", "KP-", "Escape"
	Keys string

	// Kind is the action to perform.
	Kind Kind

	// Description provides documentation for the binding.
	Description string
}

// BindingError reports a binding that could not be added to a table.
type BindingError struct {
	Keys string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %q (%s): %v", e.Keys, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error {
	return e.Err
}

// DefaultBindings returns the stock arrow/plus/minus/escape bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{Keys: "Up", Kind: KindPanNorth, Description: "Pan north"},
		{Keys: "Down", Kind: KindPanSouth, Description: "Pan south"},
		{Keys: "Left", Kind: KindPanWest, Description: "Pan west"},
		{Keys: "Right", Kind: KindPanEast, Description: "Pan east"},
		{Keys: "+", Kind: KindZoomIn, Description: "Zoom in"},
		{Keys: "=", Kind: KindZoomIn, Description: "Zoom in"},
		{Keys: "KP+", Kind: KindZoomIn, Description: "Zoom in"},
		{Keys: "-", Kind: KindZoomOut, Description: "Zoom out"},
		{Keys: "KP-", Kind: KindZoomOut, Description: "Zoom out"},
		{Keys: "Escape", Kind: KindDismissOverlay, Description: "Close popup"},
	}
}

// MergeBindings replaces the keys of every action named in overrides.
// Actions absent from overrides keep their base bindings. An action mapped
// to an empty list is unbound.
func MergeBindings(base []Binding, overrides map[string][]string) ([]Binding, error) {
	if len(overrides) == 0 {
		return append([]Binding(nil), base...), nil
	}

	replaced := make(map[Kind]bool, len(overrides))
	var extra []Binding

	// Sorted so that errors and resulting order are deterministic
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		replaced[kind] = true
		for _, ks := range overrides[name] {
			extra = append(extra, Binding{Keys: ks, Kind: kind})
		}
	}

	result := make([]Binding, 0, len(base)+len(extra))
	for _, b := range base {
		if !replaced[b.Kind] {
			result = append(result, b)
		}
	}
	return append(result, extra...), nil
}
