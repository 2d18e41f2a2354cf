package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TransactionEventPublisher announces changes to a user's transaction set.
type TransactionEventPublisher interface {
	// Publish delivers the event to every interested subscriber.
	Publish(ctx context.Context, event entity.TransactionEvent) error
}

// TransactionEventSubscriber opens a stream of change events for one user.
type TransactionEventSubscriber interface {
	// Subscribe returns a channel of events for userID. The channel is closed
	// once ctx is done or the underlying transport goes away.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.TransactionEvent, error)
}
