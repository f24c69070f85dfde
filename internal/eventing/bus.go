package eventing

import (
	"context"
	"sync"
)

// Handler consumes one delivered event with its envelope.
type Handler func(ctx context.Context, env Envelope, event any) error

// Bus is a synchronous in-process event bus. Handlers run on the
// publisher's goroutine; the first handler error aborts delivery and is
// returned to the publisher.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event type. The type string matches
// Envelope.EventType, i.e. the payload's Go type name.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	if eventType == "" || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish wraps the event in an envelope and delivers it to subscribers.
// Events with no subscribers are dropped silently.
func (b *Bus) Publish(ctx context.Context, event any, meta Meta) error {
	env, err := BuildEnvelope(event, meta)
	if err != nil {
		return err
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[env.EventType]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, env, event); err != nil {
			return err
		}
	}
	return nil
}
