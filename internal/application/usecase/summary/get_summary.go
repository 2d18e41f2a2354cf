// Package summary contains use cases that aggregate a user's transactions.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/transaction"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetSummaryInput represents the input for computing a summary.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GetSummaryOutput represents the computed summary.
type GetSummaryOutput struct {
	Summary          valueobject.Summary
	TransactionCount int
	GeneratedAt      time.Time
}

// GetSummaryUseCase loads a user's transactions and aggregates them.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute computes the summary for the user's transactions in the optional range.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if err := transaction.ValidateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindAll(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &GetSummaryOutput{
		Summary:          valueobject.Summarize(transactions),
		TransactionCount: len(transactions),
		GeneratedAt:      time.Now().UTC(),
	}, nil
}
