package keyboard

import "github.com/dshills/slippy/internal/input/keymap"

// DefaultShiftMultiplier scales pan and zoom while Shift is held.
const DefaultShiftMultiplier = 3

// Config configures a Controller.
type Config struct {
	// PanDistance is the pan offset in pixels (default: 80).
	PanDistance float64

	// ZoomDelta is the zoom change per key press (default: 1).
	ZoomDelta float64

	// ShiftMultiplier scales pan distance and zoom delta while Shift is
	// held (default: 3). Set to 1 to make Shift have no effect.
	ShiftMultiplier float64

	// Disabled starts the controller disabled. The zero value starts it
	// enabled.
	Disabled bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PanDistance:     keymap.DefaultPanDistance,
		ZoomDelta:       keymap.DefaultZoomDelta,
		ShiftMultiplier: DefaultShiftMultiplier,
	}
}

func (c Config) normalized() Config {
	if c.PanDistance <= 0 {
		c.PanDistance = keymap.DefaultPanDistance
	}
	if c.ZoomDelta <= 0 {
		c.ZoomDelta = keymap.DefaultZoomDelta
	}
	if c.ShiftMultiplier <= 0 {
		c.ShiftMultiplier = DefaultShiftMultiplier
	}
	return c
}
