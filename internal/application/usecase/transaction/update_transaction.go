package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateTransactionInput is a partial update; nil fields keep their value.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Amount        *decimal.Decimal
	Category      *string
	Type          *entity.TransactionType
	Date          *time.Time
	Notes         *string
}

func (in UpdateTransactionInput) isEmpty() bool {
	return in.Amount == nil && in.Category == nil && in.Type == nil && in.Date == nil && in.Notes == nil
}

// applyTo validates each present field and writes it onto t. t is left
// partially modified on error, so callers must discard it.
func (in UpdateTransactionInput) applyTo(t *entity.Transaction) error {
	if in.Amount != nil {
		if err := validateAmount(*in.Amount); err != nil {
			return err
		}
		t.Amount = *in.Amount
	}
	if in.Category != nil {
		category, err := normalizeCategory(*in.Category)
		if err != nil {
			return err
		}
		t.Category = category
	}
	if in.Type != nil {
		if err := validateType(*in.Type); err != nil {
			return err
		}
		t.Type = *in.Type
	}
	if in.Date != nil {
		if err := validateDate(*in.Date); err != nil {
			return err
		}
		t.Date = *in.Date
	}
	if in.Notes != nil {
		if err := validateNotes(*in.Notes); err != nil {
			return err
		}
		t.Notes = *in.Notes
	}
	return nil
}

// UpdateTransactionUseCase handles partial transaction updates.
type UpdateTransactionUseCase struct {
	repo      adapter.TransactionRepository
	publisher adapter.TransactionEventPublisher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(repo adapter.TransactionRepository, publisher adapter.TransactionEventPublisher) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{repo: repo, publisher: publisher}
}

// Execute applies the provided fields and returns the updated transaction.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*TransactionResult, error) {
	if input.isEmpty() {
		return nil, domainerror.NewTransactionError(domainerror.ErrCodeNoFieldsToUpdate, "at least one field must be provided", domainerror.ErrNoFieldsToUpdate)
	}

	t, err := loadOwned(ctx, uc.repo, input.UserID, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := input.applyTo(t); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()

	// The row may have been deleted since it was loaded.
	if err := uc.repo.Update(ctx, t); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	publishEvent(ctx, uc.publisher, entity.TransactionEventUpdated, t)
	return &TransactionResult{Transaction: toTransactionOutput(t)}, nil
}
