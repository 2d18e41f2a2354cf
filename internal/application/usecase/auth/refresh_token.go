package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// RefreshTokenInput holds the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token: the presented token is claimed
// and a new pair is issued. A token can be rotated only once.
type RefreshTokenUseCase struct {
	tokens adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(tokens adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{tokens: tokens}
}

// Execute claims the presented refresh token and issues a new session.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*adapter.SessionTokens, error) {
	claims, err := uc.tokens.ParseRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid or expired refresh token", domainerror.ErrInvalidToken)
	}

	if err := uc.tokens.ClaimRefreshToken(ctx, input.RefreshToken); err != nil {
		if errors.Is(err, domainerror.ErrInvalidToken) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "refresh token has been revoked", domainerror.ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to claim refresh token: %w", err)
	}

	// Rotation issues the short lifetimes; remember-me only applies at sign-in.
	pair, err := uc.tokens.IssueSession(ctx, claims.UserID, claims.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session tokens: %w", err)
	}
	return pair, nil
}
