package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is returned by HandleEvent once a quit command is seen.
	// Run treats it as a normal exit.
	ErrQuit = errors.New("app: quit")

	ErrAlreadyRunning = errors.New("app: already running")
	ErrNoTerminal     = errors.New("app: no terminal")
	ErrNoConfigPath   = errors.New("app: no configuration file to reload")
)

// InitError names the component that failed while the application was
// being built or started.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("app: %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
