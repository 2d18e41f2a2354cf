package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteTransactionInput identifies the transaction to delete.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput reports the outcome of a delete.
type DeleteTransactionOutput struct {
	Success bool
}

// DeleteTransactionUseCase soft-deletes a transaction. Deleted rows drop out
// of listings and summaries but stay in the table.
type DeleteTransactionUseCase struct {
	repo      adapter.TransactionRepository
	publisher adapter.TransactionEventPublisher
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(repo adapter.TransactionRepository, publisher adapter.TransactionEventPublisher) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{repo: repo, publisher: publisher}
}

// Execute deletes the transaction and announces the deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	// Loaded first so the event can carry the owner.
	t, err := loadOwned(ctx, uc.repo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}

	err = uc.repo.Delete(ctx, input.UserID, input.TransactionID)
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return nil, notFoundError()
	case err != nil:
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	publishEvent(ctx, uc.publisher, entity.TransactionEventDeleted, t)
	return &DeleteTransactionOutput{Success: true}, nil
}
