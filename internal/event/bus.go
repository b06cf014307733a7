package event

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/slippy/internal/event/topic"
)

// Bus is the event bus interface.
type Bus interface {
	// Publish delivers event to every matching subscription before returning.
	Publish(ctx context.Context, event any) error

	// Subscribe creates a new subscription for the given topic pattern.
	Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)

	// SubscribeFunc is Subscribe for a function handler.
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)

	// Unsubscribe removes a subscription.
	Unsubscribe(sub Subscription) error

	// Stats returns delivery statistics.
	Stats() Stats

	// Close cancels every subscription. Further Publish and Subscribe
	// calls fail with ErrBusClosed.
	Close() error
}

type bus struct {
	registry *Registry
	config   busConfig
	closed   atomic.Bool

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &bus{
		registry: NewRegistry(),
		config:   config,
	}
}

// Publish delivers event synchronously.
// Handler failures are counted and reported, never returned.
func (b *bus) Publish(ctx context.Context, event any) error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	eventTopic := extractTopic(event)
	if eventTopic == "" {
		return ErrInvalidEvent
	}

	subs := b.registry.MatchActive(eventTopic)
	if len(subs) == 0 {
		return nil
	}
	b.eventsPublished.Add(1)

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sub.accepts(event) {
			continue
		}
		if sub.once {
			// Claimed before delivery so a nested Publish from the handler
			// cannot reach it again.
			if !sub.transition(StateActive, StateCancelled) {
				continue
			}
			b.registry.Remove(sub.id)
		}
		b.deliver(ctx, event, sub)
	}
	return nil
}

func (b *bus) deliver(ctx context.Context, event any, sub *subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			b.config.reportPanic(event, sub, r)
		}
	}()

	if err := sub.handler.Handle(ctx, event); err != nil {
		b.handlerErrors.Add(1)
		b.config.reportError(event, sub, &HandlerError{
			SubscriptionID: sub.id,
			Topic:          string(sub.topic),
			Err:            err,
		})
		return
	}
	b.eventsDelivered.Add(1)
}

// Subscribe creates a new subscription for the given topic pattern.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), topicPattern, handler, opts...)
	b.registry.Add(sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(topicPattern, fn, opts...)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.Remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		EventsDelivered:   b.eventsDelivered.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		ActiveSubscribers: b.registry.CountActive(),
	}
}

// Close cancels all subscriptions.
func (b *bus) Close() error {
	if b.closed.Swap(true) {
		return ErrBusClosed
	}
	b.registry.Clear()
	return nil
}

func extractTopic(event any) topic.Topic {
	if tp, ok := event.(TopicProvider); ok {
		return tp.EventTopic()
	}
	return ""
}
