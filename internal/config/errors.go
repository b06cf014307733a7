package config

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat    = errors.New("config: unknown format")
	ErrValidationFailed = errors.New("config: validation failed")
	ErrInvalidEnv       = errors.New("config: invalid environment value")
)

// ParseError reports a file that could not be decoded. Line and Column
// are zero when the decoder gives no position.
type ParseError struct {
	Path         string
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("config: %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("config: %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError rejects one setting. Key is the dotted file key, such
// as keyboard.pan_distance. It matches ErrValidationFailed.
type ValidationError struct {
	Key    string
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s, got %v", e.Key, e.Reason, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }
