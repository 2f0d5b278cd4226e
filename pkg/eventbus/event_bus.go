// Package eventbus provides event-driven communication infrastructure for
// verification lifecycle notifications.
package eventbus

import (
	"context"

	"github.com/anunay-mishra-24/loanverify/pkg/events"
)

// Event is anything published on the shared topic: verification lifecycle
// events and UI directives alike.
type Event interface {
	GetType() events.EventType
}

// EventPublisher is the write half. key is the record id the event belongs
// to, used as the partition key on brokered channels.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event Event) error
}

// EventSubscriber routes decoded events to per-type handlers. Handle
// registrations must happen before Subscribe starts the consume loop.
type EventSubscriber interface {
	Handle(eventType events.EventType, handler EventHandler) error
	Subscribe(ctx context.Context) error
}

type EventHandler func(ctx context.Context, event any) error

type EventBus interface {
	EventPublisher
	EventSubscriber
	Close() error
	GenerateID() string
}
