package event

import (
	"sync/atomic"

	"github.com/dshills/slippy/internal/event/topic"
)

// State is the lifecycle state of a subscription.
type State int32

// Subscription states. A cancelled subscription never becomes active again.
const (
	StateActive State = iota
	StatePaused
	StateCancelled
)

var stateNames = [...]string{"active", "paused", "cancelled"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Subscription is a handle returned by Subscribe.
type Subscription interface {
	ID() string
	Topic() topic.Topic
	Priority() Priority
	State() State

	// Active reports whether events are currently delivered.
	Active() bool

	// Pause suspends delivery until Resume. It has no effect on a
	// cancelled subscription.
	Pause()
	Resume()
	Cancel()
}

// SubscriptionOption adjusts a subscription at creation time.
type SubscriptionOption func(*subscription)

// WithPriority orders the subscription among those matching the same
// event. Lower values are called first.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) { s.priority = p }
}

// WithFilter skips events for which f returns false.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(s *subscription) { s.filter = f }
}

// WithOnce cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) { s.once = true }
}

type subscription struct {
	id       string
	topic    topic.Topic
	handler  Handler
	priority Priority
	filter   FilterFunc
	once     bool

	// seq is assigned by the registry and breaks priority ties.
	seq   uint64
	state atomic.Int32
}

func newSubscription(id string, t topic.Topic, h Handler, opts ...SubscriptionOption) *subscription {
	s := &subscription{id: id, topic: t, handler: h, priority: PriorityNormal}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.topic }
func (s *subscription) Priority() Priority { return s.priority }
func (s *subscription) State() State       { return State(s.state.Load()) }
func (s *subscription) Active() bool       { return s.State() == StateActive }

func (s *subscription) Pause()  { s.transition(StateActive, StatePaused) }
func (s *subscription) Resume() { s.transition(StatePaused, StateActive) }
func (s *subscription) Cancel() { s.state.Store(int32(StateCancelled)) }

func (s *subscription) transition(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

// accepts reports whether event should be handed to the handler now.
func (s *subscription) accepts(event any) bool {
	return s.Active() && (s.filter == nil || s.filter(event))
}
