package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ResetPasswordInput holds the reset grant and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordUseCase redeems a reset grant. A successful reset also enables
// password sign-in for Google-only accounts and revokes every session.
type ResetPasswordUseCase struct {
	users       adapter.UserRepository
	passwords   adapter.PasswordHasher
	resetTokens adapter.ResetTokenService
	tokens      adapter.TokenService
	now         func() time.Time
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordHasher,
	resetTokens adapter.ResetTokenService,
	tokens adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		users:       users,
		passwords:   passwords,
		resetTokens: resetTokens,
		tokens:      tokens,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Execute claims the grant, then stores the new password hash.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*MessageOutput, error) {
	grant, err := uc.resetTokens.LookupResetToken(ctx, input.Token)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidResetToken, "invalid or expired password reset token", domainerror.ErrInvalidResetToken)
	}

	now := uc.now()
	if now.After(grant.ExpiresAt) {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredResetToken, "password reset token has expired", domainerror.ErrInvalidResetToken)
	}
	if uc.passwords.CheckStrength(input.NewPassword) != nil {
		return nil, weakPasswordError()
	}

	user, err := uc.users.FindByID(ctx, grant.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	hash, err := uc.passwords.Hash(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The grant is claimed before the password changes so a token can only
	// ever set one password.
	if err := uc.resetTokens.ConsumeResetToken(ctx, input.Token); err != nil {
		if errors.Is(err, domainerror.ErrInvalidResetToken) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidResetToken, "invalid or expired password reset token", domainerror.ErrInvalidResetToken)
		}
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	user.PasswordHash = hash
	user.AddProvider(entity.AuthProviderEmail)
	user.UpdatedAt = now

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	// The password has changed at this point, so a revocation failure is only logged.
	if err := uc.tokens.RevokeSessions(ctx, user.ID); err != nil {
		slog.Warn("Failed to revoke sessions after reset", "error", err, "userID", user.ID)
	}

	return &MessageOutput{Message: resetPasswordMessage}, nil
}
