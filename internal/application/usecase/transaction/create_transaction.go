package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateTransactionInput holds the fields of a new transaction.
type CreateTransactionInput struct {
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Category string
	Type     entity.TransactionType
	Date     time.Time
	Notes    string
}

// validate checks fields in the order errors are reported and returns the
// trimmed category.
func (in CreateTransactionInput) validate() (string, error) {
	if err := validateAmount(in.Amount); err != nil {
		return "", err
	}
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return "", err
	}
	for _, check := range []func() error{
		func() error { return validateType(in.Type) },
		func() error { return validateDate(in.Date) },
		func() error { return validateNotes(in.Notes) },
	} {
		if err := check(); err != nil {
			return "", err
		}
	}
	return category, nil
}

// CreateTransactionUseCase handles recording a transaction.
type CreateTransactionUseCase struct {
	repo      adapter.TransactionRepository
	publisher adapter.TransactionEventPublisher
}

// NewCreateTransactionUseCase builds the use case. publisher may be nil.
func NewCreateTransactionUseCase(repo adapter.TransactionRepository, publisher adapter.TransactionEventPublisher) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{repo: repo, publisher: publisher}
}

// Execute validates the input, stores the transaction and announces it.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	category, err := input.validate()
	if err != nil {
		return nil, err
	}

	t := entity.NewTransaction(input.UserID, input.Amount, category, input.Type, input.Date, input.Notes)
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	publishEvent(ctx, uc.publisher, entity.TransactionEventCreated, t)
	return &TransactionResult{Transaction: toTransactionOutput(t)}, nil
}
