package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// GetTransactionInput identifies one of the user's transactions.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionUseCase handles fetching a single transaction.
type GetTransactionUseCase struct {
	repo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(repo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{repo: repo}
}

// Execute answers not found for transactions of other users.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*TransactionResult, error) {
	t, err := loadOwned(ctx, uc.repo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: toTransactionOutput(t)}, nil
}
