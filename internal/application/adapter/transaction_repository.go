// Package adapter declares the ports use cases depend on. Implementations
// live under internal/integration.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TransactionFilter narrows a query. UserID is always applied; the other
// fields only when set. Dates are inclusive.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	// Search matches category or notes, case-insensitively.
	Search string
}

// TransactionPagination selects a 1-based page of Limit rows.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository persists transactions. Every method is scoped to one
// owner, and lookups of another user's row report ErrTransactionNotFound.
// Listings are ordered by date then creation time, newest first.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Transaction, error)
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)
	// FindAll is unpaginated; the summary aggregates over it.
	FindAll(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	// Delete is a soft delete.
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// BulkDelete soft-deletes all ids atomically. It fails with
	// ErrTransactionNotFound, changing nothing, when any id is not a live row
	// of userID. ids must be distinct.
	BulkDelete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	// BulkUpdateCategory sets category on all ids under the same rules as BulkDelete.
	BulkUpdateCategory(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, category string) (int64, error)
}
