package eventbus

import (
	"context"
)

// Event is a fact that happened after a task committed its writes.
type Event interface {
	Type() string
}

// Keyed events choose the partition key they are published under.
type Keyed interface {
	Key() string
}

// Publisher defines the contract for publishing domain events.
// Delivery is at most once: a failed Emit is never retried.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// HandlerFunc handles an event delivered in process.
type HandlerFunc func(ctx context.Context, event Event) error
