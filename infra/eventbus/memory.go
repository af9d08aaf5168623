package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/payouts/pkg/eventbus"
)

// MemoryPublisher keeps published events in process and runs registered handlers.
type MemoryPublisher struct {
	mu        sync.RWMutex
	handlers  map[string][]eventbus.HandlerFunc
	published []eventbus.Event
	logger    *slog.Logger
}

// NewWithMemory creates an in-memory publisher.
func NewWithMemory(logger *slog.Logger) *MemoryPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryPublisher{
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

// Register adds a handler for eventType.
func (b *MemoryPublisher) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit records the event and runs its handlers. Handler errors are logged.
func (b *MemoryPublisher) Emit(ctx context.Context, event eventbus.Event) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Warn("Event handler failed", "type", event.Type(), "error", err)
		}
	}
	return nil
}

// Published returns a copy of the events emitted so far.
func (b *MemoryPublisher) Published() []eventbus.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]eventbus.Event(nil), b.published...)
}

// ClearPublished clears the list of published events.
func (b *MemoryPublisher) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Close is a no-op.
func (b *MemoryPublisher) Close() error { return nil }
