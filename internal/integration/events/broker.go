// Package events delivers transaction change notifications between writers and
// summary watchers.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DefaultSubscriberBuffer is the channel capacity given to each subscriber.
const DefaultSubscriberBuffer = 16

// Broker is an in-process publisher and subscriber with per-user fan-out.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[chan entity.TransactionEvent]struct{}
	buffer      int
}

// NewBroker creates a broker. A non-positive buffer selects DefaultSubscriberBuffer.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Broker{
		subscribers: make(map[uuid.UUID]map[chan entity.TransactionEvent]struct{}),
		buffer:      buffer,
	}
}

// Publish delivers the event to every subscriber of the event's user.
// A subscriber whose buffer is full misses the event; Publish never blocks.
func (b *Broker) Publish(_ context.Context, event entity.TransactionEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[event.UserID] {
		select {
		case ch <- event:
		default:
			slog.Debug("Dropping transaction event for slow subscriber",
				"userID", event.UserID,
				"kind", event.Kind,
			)
		}
	}
	return nil
}

// Subscribe registers a subscriber for userID until ctx is done.
func (b *Broker) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.TransactionEvent, error) {
	ch := make(chan entity.TransactionEvent, b.buffer)

	b.mu.Lock()
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[chan entity.TransactionEvent]struct{})
	}
	b.subscribers[userID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(userID, ch)
	}()

	return ch, nil
}

func (b *Broker) unsubscribe(userID uuid.UUID, ch chan entity.TransactionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers[userID], ch)
	if len(b.subscribers[userID]) == 0 {
		delete(b.subscribers, userID)
	}
	close(ch)
}

// SubscriberCount returns the number of live subscriptions for userID.
func (b *Broker) SubscriberCount(userID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[userID])
}
