package event

import "log/slog"

// BusOption configures an event Bus.
type BusOption func(*busConfig)

type busConfig struct {
	panicHandler PanicHandler
	errorHandler ErrorHandler
	logger       *slog.Logger
}

func defaultBusConfig() busConfig {
	return busConfig{}
}

// WithPanicHandler sets the function called when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithErrorHandler sets the function called when a handler returns an error.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(c *busConfig) {
		c.errorHandler = h
	}
}

// WithLogger sets the logger used to report handler failures.
// Failures are only logged when no explicit handler is configured.
func WithLogger(l *slog.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = l
	}
}

func (c *busConfig) reportPanic(event any, sub *subscription, v any) {
	if c.panicHandler != nil {
		c.panicHandler(event, sub, v)
		return
	}
	if c.logger != nil {
		c.logger.Error("event handler panicked",
			"err", &PanicError{SubscriptionID: sub.id, Topic: string(sub.topic), Value: v})
	}
}

func (c *busConfig) reportError(event any, sub *subscription, err error) {
	if c.errorHandler != nil {
		c.errorHandler(event, sub, err)
		return
	}
	if c.logger != nil {
		c.logger.Warn("event handler failed",
			"topic", string(sub.topic),
			"subscription", sub.id,
			"err", err)
	}
}
