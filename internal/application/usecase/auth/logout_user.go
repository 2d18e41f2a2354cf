package auth

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LogoutUserInput names the refresh token to revoke.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase revokes one refresh token.
type LogoutUserUseCase struct {
	tokens adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokens adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokens: tokens}
}

// Execute never fails: an unknown or already revoked token means the client
// is signed out anyway.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*MessageOutput, error) {
	if err := uc.tokens.RevokeRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.Debug("Logout with unknown refresh token", "error", err)
	}
	return &MessageOutput{Message: logoutMessage}, nil
}
