// Package transaction holds the ledger use cases. Every operation is scoped to
// the acting user and every committed change is announced to the event publisher.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxCategoryLength is the maximum allowed length for a category label.
	MaxCategoryLength = 50
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
	// AmountPlaces is the number of decimal places an amount may carry.
	AmountPlaces = 2
	// MaxBulkTransactions caps the ids a single bulk request may name.
	MaxBulkTransactions = 100
)

// maxAmount is the first value that no longer fits a decimal(15,2) column.
var maxAmount = decimal.New(1, 13)

// TransactionOutput is a transaction as handed to the transport layer.
type TransactionOutput struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Amount    decimal.Decimal
	Category  string
	Type      entity.TransactionType
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionResult wraps the single transaction a use case acted on.
type TransactionResult struct {
	Transaction *TransactionOutput
}

// distinctIDs validates the ids of a bulk request and drops repeats, keeping
// the first occurrence order.
func distinctIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"transaction IDs list cannot be empty",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	if len(out) > MaxBulkTransactions {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTooManyTransactionIDs,
			fmt.Sprintf("at most %d transactions can be changed at once", MaxBulkTransactions),
			domainerror.ErrTooManyTransactionIDs,
		)
	}
	return out, nil
}

func toTransactionOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:        t.ID,
		UserID:    t.UserID,
		Amount:    t.Amount,
		Category:  t.Category,
		Type:      t.Type,
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// validateAmount accepts positive amounts with at most two decimal places
// below maxAmount.
func validateAmount(amount decimal.Decimal) error {
	var message string
	switch {
	case !amount.IsPositive():
		message = "amount must be greater than zero"
	case !amount.Equal(amount.Round(AmountPlaces)):
		message = "amount must have at most 2 decimal places"
	case amount.GreaterThanOrEqual(maxAmount):
		message = "amount must be less than 10000000000000"
	default:
		return nil
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionAmount,
		message,
		domainerror.ErrInvalidTransactionAmount,
	)
}

// normalizeCategory trims the label and checks its length.
func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" || len([]rune(category)) > MaxCategoryLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionCategory,
			fmt.Sprintf("category must be between 1 and %d characters", MaxCategoryLength),
			domainerror.ErrInvalidTransactionCategory,
		)
	}
	return category, nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date must be a valid YYYY-MM-DD date",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return nil
}

func validateNotes(notes string) error {
	if len([]rune(notes)) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

// ValidateDateRange rejects a range whose start is after its end.
func ValidateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"start_date must not be after end_date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// loadOwned fetches a transaction of userID, mapping absence to TXN-020001.
func loadOwned(ctx context.Context, repo adapter.TransactionRepository, userID, id uuid.UUID) (*entity.Transaction, error) {
	t, err := repo.FindByID(ctx, userID, id)
	switch {
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return nil, notFoundError()
	case err != nil:
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

func notFoundError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// publishEvent announces a committed change to t.
func publishEvent(ctx context.Context, publisher adapter.TransactionEventPublisher, kind entity.TransactionEventKind, t *entity.Transaction) {
	publishEvents(ctx, publisher, kind, t.UserID, []uuid.UUID{t.ID})
}

// publishEvents announces one committed change per id. The write already
// succeeded, so publish failures are logged rather than returned.
func publishEvents(ctx context.Context, publisher adapter.TransactionEventPublisher, kind entity.TransactionEventKind, userID uuid.UUID, ids []uuid.UUID) {
	if publisher == nil {
		return
	}
	for _, id := range ids {
		event := entity.NewTransactionEvent(kind, userID, id)
		if err := publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish transaction event",
				"kind", kind,
				"userID", userID,
				"transactionID", id,
				"error", err,
			)
		}
	}
}
