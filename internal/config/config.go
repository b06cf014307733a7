package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dshills/slippy/internal/input/keymap"
)

// Config is the complete slippy configuration.
type Config struct {
	Keyboard KeyboardConfig `toml:"keyboard" yaml:"keyboard"`
	Map      MapConfig      `toml:"map" yaml:"map"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Plugins  PluginsConfig  `toml:"plugins" yaml:"plugins"`
}

// KeyboardConfig configures keyboard navigation.
type KeyboardConfig struct {
	// Enabled is the initial enabled state.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// PanDistance is the pan offset in pixels.
	PanDistance float64 `toml:"pan_distance" yaml:"pan_distance"`

	// ZoomDelta is the zoom change per key press.
	ZoomDelta float64 `toml:"zoom_delta" yaml:"zoom_delta"`

	// ShiftMultiplier scales pan and zoom while Shift is held.
	ShiftMultiplier float64 `toml:"shift_multiplier" yaml:"shift_multiplier"`

	// Bindings replaces the keys of the named actions, e.g.
	// "pan.north" = ["Up", "k"].
	Bindings map[string][]string `toml:"bindings" yaml:"bindings"`
}

// MapConfig configures the initial view.
type MapConfig struct {
	Lat     float64 `toml:"lat" yaml:"lat"`
	Lng     float64 `toml:"lng" yaml:"lng"`
	Zoom    float64 `toml:"zoom" yaml:"zoom"`
	MinZoom float64 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom" yaml:"max_zoom"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty discards logs.
	File string `toml:"file" yaml:"file"`
}

// PluginsConfig lists Lua feature layer scripts.
type PluginsConfig struct {
	Scripts []string `toml:"scripts" yaml:"scripts"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Keyboard: KeyboardConfig{
			Enabled:         true,
			PanDistance:     keymap.DefaultPanDistance,
			ZoomDelta:       keymap.DefaultZoomDelta,
			ShiftMultiplier: 3,
		},
		Map: MapConfig{
			Zoom:    2,
			MinZoom: 0,
			MaxZoom: 18,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Key: path, Reason: msg, Value: v})
	}

	k := c.Keyboard
	if !(k.PanDistance > 0) || math.IsInf(k.PanDistance, 0) {
		fail("keyboard.pan_distance", "must be a positive number", k.PanDistance)
	}
	if !(k.ZoomDelta > 0) || math.IsInf(k.ZoomDelta, 0) {
		fail("keyboard.zoom_delta", "must be a positive number", k.ZoomDelta)
	}
	if !(k.ShiftMultiplier >= 1) || math.IsInf(k.ShiftMultiplier, 0) {
		fail("keyboard.shift_multiplier", "must be at least 1", k.ShiftMultiplier)
	}
	if _, err := c.Keyboard.Table(); err != nil {
		fail("keyboard.bindings", "are invalid ("+err.Error()+")", k.Bindings)
	}

	m := c.Map
	if m.Lat < -90 || m.Lat > 90 || math.IsNaN(m.Lat) {
		fail("map.lat", "must be between -90 and 90", m.Lat)
	}
	if m.Lng < -180 || m.Lng > 180 || math.IsNaN(m.Lng) {
		fail("map.lng", "must be between -180 and 180", m.Lng)
	}
	if m.MinZoom < 0 || m.MaxZoom < m.MinZoom {
		fail("map.max_zoom", fmt.Sprintf("gives an empty or negative zoom range [%g, %g]", m.MinZoom, m.MaxZoom), m.MaxZoom)
	} else if m.Zoom < m.MinZoom || m.Zoom > m.MaxZoom || math.IsNaN(m.Zoom) {
		fail("map.zoom", fmt.Sprintf("must be within [%g, %g]", m.MinZoom, m.MaxZoom), m.Zoom)
	}

	if !logLevels[strings.ToLower(c.Logging.Level)] {
		fail("logging.level", "must be one of debug, info, warn, error", c.Logging.Level)
	}

	return errors.Join(errs...)
}

// KeyBindings returns the default bindings with Bindings applied.
func (k KeyboardConfig) KeyBindings() ([]keymap.Binding, error) {
	return keymap.MergeBindings(keymap.DefaultBindings(), k.Bindings)
}

// Table builds the binding table described by the keyboard settings.
func (k KeyboardConfig) Table() (*keymap.Table, error) {
	bindings, err := k.KeyBindings()
	if err != nil {
		return nil, err
	}
	return keymap.NewTable(keymap.Options{PanDistance: k.PanDistance, ZoomDelta: k.ZoomDelta}, bindings)
}
