package plugin

import (
	"errors"
	"fmt"
)

// Errors returned by the plugin host.
var (
	// ErrHostClosed is returned when the host has been closed.
	ErrHostClosed = errors.New("plugin host is closed")

	// ErrDuplicatePlugin is returned when a plugin name is loaded twice.
	ErrDuplicatePlugin = errors.New("plugin already loaded")
)

// ScriptError wraps a Lua error with the plugin name.
type ScriptError struct {
	Plugin string
	Err    error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Plugin, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
