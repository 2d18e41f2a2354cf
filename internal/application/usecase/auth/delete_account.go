package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteAccountConfirmation is the text a user types to confirm deletion.
const DeleteAccountConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase handles account deletion. Password accounts must
// re-enter the password; accounts without one must send the confirmation text.
type DeleteAccountUseCase struct {
	users        adapter.UserRepository
	passwords    adapter.PasswordHasher
	tokens       adapter.TokenService
	transactions adapter.TransactionRepository
	publisher    adapter.TransactionEventPublisher
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance. publisher may be nil.
func NewDeleteAccountUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordHasher,
	tokens adapter.TokenService,
	transactions adapter.TransactionRepository,
	publisher adapter.TransactionEventPublisher,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		users:        users,
		passwords:    passwords,
		tokens:       tokens,
		transactions: transactions,
		publisher:    publisher,
	}
}

// Execute signs the user out everywhere, then removes the account with all
// of its transactions.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != "" && input.Confirmation != DeleteAccountConfirmation {
		return nil, invalidConfirmationError("confirmation must be exactly 'DELETE'")
	}

	user, err := uc.users.FindByID(ctx, input.UserID)
	switch {
	case errors.Is(err, domainerror.ErrUserNotFound):
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.HasPassword() {
		if err := uc.passwords.Compare(user.PasswordHash, input.Password); err != nil {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
		}
	} else if input.Confirmation != DeleteAccountConfirmation {
		return nil, invalidConfirmationError("accounts without a password must confirm with 'DELETE'")
	}

	if err := uc.tokens.RevokeSessions(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to invalidate user tokens: %w", err)
	}

	owned, err := uc.transactions.FindAll(ctx, adapter.TransactionFilter{UserID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	if err := uc.users.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	uc.announceDeleted(ctx, owned)
	return &DeleteAccountOutput{Success: true}, nil
}

// announceDeleted publishes a deleted event per removed transaction. Failures
// are logged since the account is already gone.
func (uc *DeleteAccountUseCase) announceDeleted(ctx context.Context, owned []*entity.Transaction) {
	if uc.publisher == nil {
		return
	}
	for _, t := range owned {
		event := entity.NewTransactionEvent(entity.TransactionEventDeleted, t.UserID, t.ID)
		if err := uc.publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish transaction event", "kind", event.Kind, "userID", t.UserID, "transactionID", t.ID, "error", err)
		}
	}
}

func invalidConfirmationError(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidConfirmation, message, domainerror.ErrInvalidConfirmation)
}
