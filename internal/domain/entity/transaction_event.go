package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionEventKind describes what happened to a transaction.
type TransactionEventKind string

// Transaction change kinds.
const (
	TransactionEventCreated TransactionEventKind = "created"
	TransactionEventUpdated TransactionEventKind = "updated"
	TransactionEventDeleted TransactionEventKind = "deleted"
)

// TransactionEvent notifies that a user's transaction set changed.
// It carries no transaction payload; consumers refetch what they need.
type TransactionEvent struct {
	Kind          TransactionEventKind `json:"kind"`
	UserID        uuid.UUID            `json:"user_id"`
	TransactionID uuid.UUID            `json:"transaction_id"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

// NewTransactionEvent creates an event stamped with the current time.
func NewTransactionEvent(kind TransactionEventKind, userID, transactionID uuid.UUID) TransactionEvent {
	return TransactionEvent{
		Kind:          kind,
		UserID:        userID,
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	}
}
