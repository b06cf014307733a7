package keymap

import (
	"fmt"
	"strings"

	"github.com/dshills/slippy/internal/geo"
)

// Kind enumerates the semantic actions a key can trigger.
type Kind uint8

const (
	// KindNone means the key is not bound.
	KindNone Kind = iota
	KindPanNorth
	KindPanSouth
	KindPanEast
	KindPanWest
	KindZoomIn
	KindZoomOut
	KindDismissOverlay
)

var kindNames = map[Kind]string{
	KindNone:           "none",
	KindPanNorth:       "pan.north",
	KindPanSouth:       "pan.south",
	KindPanEast:        "pan.east",
	KindPanWest:        "pan.west",
	KindZoomIn:         "zoom.in",
	KindZoomOut:        "zoom.out",
	KindDismissOverlay: "overlay.dismiss",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind for a configuration name such as "pan.north".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if k != KindNone && n == name {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// IsPan returns true for the four pan kinds.
func (k Kind) IsPan() bool {
	return k >= KindPanNorth && k <= KindPanWest
}

// IsZoom returns true for the two zoom kinds.
func (k Kind) IsZoom() bool {
	return k == KindZoomIn || k == KindZoomOut
}

// Direction returns the unit screen vector of a pan kind.
// Screen y grows downwards, so north is (0, -1).
func (k Kind) Direction() geo.Point {
	switch k {
	case KindPanNorth:
		return geo.Pt(0, -1)
	case KindPanSouth:
		return geo.Pt(0, 1)
	case KindPanEast:
		return geo.Pt(1, 0)
	case KindPanWest:
		return geo.Pt(-1, 0)
	}
	return geo.Point{}
}

// Sign returns +1 for zoom-in, -1 for zoom-out and 0 otherwise.
func (k Kind) Sign() float64 {
	switch k {
	case KindZoomIn:
		return 1
	case KindZoomOut:
		return -1
	}
	return 0
}

// Action is a resolved key binding with its configured magnitude.
type Action struct {
	// Kind is the semantic action.
	Kind Kind

	// Direction is the unit vector for pan kinds.
	Direction geo.Point

	// Delta is the signed zoom change for zoom kinds.
	Delta float64

	// Distance is the pan distance in pixels for pan kinds.
	Distance float64
}

// Offset returns the pixel offset of a pan action scaled by factor.
func (a Action) Offset(factor float64) geo.Point {
	return a.Direction.Mul(a.Distance * factor)
}

// String returns a readable description like "pan.north(80px)".
func (a Action) String() string {
	switch {
	case a.Kind.IsPan():
		return fmt.Sprintf("%s(%gpx)", a.Kind, a.Distance)
	case a.Kind.IsZoom():
		return fmt.Sprintf("%s(%+g)", a.Kind, a.Delta)
	}
	return a.Kind.String()
}
