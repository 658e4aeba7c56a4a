// Package pubsub is a small typed fan-out used to push background updates
// (slot polls, log entries, config edits) into the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType says what happened to the payload.
type EventType string

const (
	// CreatedEvent announces a new item, such as a log entry.
	CreatedEvent EventType = "created"
	// UpdatedEvent announces a new value of something already shown,
	// such as the remaining slots or the config file.
	UpdatedEvent EventType = "updated"
)

// Event is one published payload, stamped at publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber is the receiving side of a Broker. Consumers depend on it so
// tests can feed them from any broker.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}
