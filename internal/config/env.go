package config

import (
	"fmt"
	"sort"
	"strconv"
)

// EnvPrefix prefixes every environment variable slippy reads.
const EnvPrefix = "SLIPPY_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, value string) error

func floatSetter(dst func(c *Config) *float64) envSetter {
	return func(c *Config, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

func stringSetter(dst func(c *Config) *string) envSetter {
	return func(c *Config, value string) error {
		*dst(c) = value
		return nil
	}
}

// envMapping maps environment variables (without prefix) to settings.
var envMapping = map[string]envSetter{
	"PAN_DISTANCE":     floatSetter(func(c *Config) *float64 { return &c.Keyboard.PanDistance }),
	"ZOOM_DELTA":       floatSetter(func(c *Config) *float64 { return &c.Keyboard.ZoomDelta }),
	"SHIFT_MULTIPLIER": floatSetter(func(c *Config) *float64 { return &c.Keyboard.ShiftMultiplier }),
	"LAT":              floatSetter(func(c *Config) *float64 { return &c.Map.Lat }),
	"LNG":              floatSetter(func(c *Config) *float64 { return &c.Map.Lng }),
	"ZOOM":             floatSetter(func(c *Config) *float64 { return &c.Map.Zoom }),
	"LOG_LEVEL":        stringSetter(func(c *Config) *string { return &c.Logging.Level }),
	"LOG_FILE":         stringSetter(func(c *Config) *string { return &c.Logging.File }),
	"KEYBOARD_ENABLED": func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		c.Keyboard.Enabled = b
		return nil
	},
}

// EnvVars returns the names of all recognised environment variables.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, EnvPrefix+name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides settings from SLIPPY_* variables found by lookup.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, name := range EnvVars() {
		value, ok := lookup(name)
		if !ok {
			continue
		}
		set := envMapping[name[len(EnvPrefix):]]
		if err := set(c, value); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnv, name, value, err)
		}
	}
	return nil
}
