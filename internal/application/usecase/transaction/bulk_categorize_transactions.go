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

// BulkCategorizeTransactionsInput represents the input for relabeling many transactions.
type BulkCategorizeTransactionsInput struct {
	TransactionIDs []uuid.UUID
	Category       string
	UserID         uuid.UUID
}

// BulkCategorizeTransactionsOutput represents the output of bulk categorization.
type BulkCategorizeTransactionsOutput struct {
	UpdatedCount int64
}

// BulkCategorizeTransactionsUseCase moves a batch of transactions to one
// category, all or nothing like BulkDeleteTransactionsUseCase.
type BulkCategorizeTransactionsUseCase struct {
	repo      adapter.TransactionRepository
	publisher adapter.TransactionEventPublisher
}

// NewBulkCategorizeTransactionsUseCase creates a new BulkCategorizeTransactionsUseCase instance.
func NewBulkCategorizeTransactionsUseCase(repo adapter.TransactionRepository, publisher adapter.TransactionEventPublisher) *BulkCategorizeTransactionsUseCase {
	return &BulkCategorizeTransactionsUseCase{repo: repo, publisher: publisher}
}

// Execute performs the bulk categorization.
func (uc *BulkCategorizeTransactionsUseCase) Execute(ctx context.Context, input BulkCategorizeTransactionsInput) (*BulkCategorizeTransactionsOutput, error) {
	ids, err := distinctIDs(input.TransactionIDs)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.BulkUpdateCategory(ctx, input.UserID, ids, category)
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"one or more transactions not found",
			domainerror.ErrTransactionNotFound,
		)
	case err != nil:
		return nil, fmt.Errorf("failed to bulk categorize transactions: %w", err)
	}

	publishEvents(ctx, uc.publisher, entity.TransactionEventUpdated, input.UserID, ids)
	return &BulkCategorizeTransactionsOutput{UpdatedCount: updated}, nil
}
