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

// BulkDeleteTransactionsInput represents the input for bulk transaction deletion.
type BulkDeleteTransactionsInput struct {
	TransactionIDs []uuid.UUID
	UserID         uuid.UUID
}

// BulkDeleteTransactionsOutput represents the output of bulk transaction deletion.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int64
}

// BulkDeleteTransactionsUseCase handles bulk transaction deletion. The batch
// is all or nothing: one foreign or unknown id leaves every row in place.
type BulkDeleteTransactionsUseCase struct {
	repo      adapter.TransactionRepository
	publisher adapter.TransactionEventPublisher
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(repo adapter.TransactionRepository, publisher adapter.TransactionEventPublisher) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{repo: repo, publisher: publisher}
}

// Execute performs the bulk transaction deletion.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	ids, err := distinctIDs(input.TransactionIDs)
	if err != nil {
		return nil, err
	}

	deleted, err := uc.repo.BulkDelete(ctx, input.UserID, ids)
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"one or more transactions not found",
			domainerror.ErrTransactionNotFound,
		)
	case err != nil:
		return nil, fmt.Errorf("failed to bulk delete transactions: %w", err)
	}

	publishEvents(ctx, uc.publisher, entity.TransactionEventDeleted, input.UserID, ids)
	return &BulkDeleteTransactionsOutput{DeletedCount: deleted}, nil
}
