package event

import "context"

// Priority orders handlers subscribed to the same event. Handlers with
// equal priority run in subscription order.
type Priority int

// Standard priorities. Plugins subscribe at Normal; application commands
// run at Low so plugins see keys first.
const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 100
	PriorityNormal   Priority = 200
	PriorityLow      Priority = 300
)

// String names the band p falls in.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	}
	return "low"
}

// Handler receives published events. Use Payload to recover the typed
// payload.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

func (f HandlerFunc) Handle(ctx context.Context, event any) error { return f(ctx, event) }

// FilterFunc reports whether a subscription wants event.
type FilterFunc func(event any) bool

// Stats is a snapshot of bus counters.
type Stats struct {
	// EventsPublished counts events that matched at least one subscription.
	EventsPublished uint64
	EventsDelivered uint64
	HandlerErrors   uint64
	HandlerPanics   uint64

	ActiveSubscribers int
}

// PanicHandler and ErrorHandler replace the bus's default logging of
// handler failures.
type (
	PanicHandler func(event any, sub Subscription, recovered any)
	ErrorHandler func(event any, sub Subscription, err error)
)
