package event

import (
	"errors"
	"fmt"
)

var (
	ErrBusClosed            = errors.New("event: bus closed")
	ErrInvalidEvent         = errors.New("event: value has no topic")
	ErrInvalidTopic         = errors.New("event: invalid topic")
	ErrNilHandler           = errors.New("event: nil handler")
	ErrInvalidSubscription  = errors.New("event: invalid subscription")
	ErrSubscriptionNotFound = errors.New("event: subscription not found")

	// ErrHandlerPanic matches any *PanicError.
	ErrHandlerPanic = errors.New("event: handler panicked")
)

// HandlerError is reported when a handler returns an error.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("event: %s handler %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PanicError is reported when a handler panics. Value is what was recovered.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("event: %s handler %s panicked: %v", e.Topic, e.SubscriptionID, e.Value)
}

func (e *PanicError) Is(target error) bool { return target == ErrHandlerPanic }
