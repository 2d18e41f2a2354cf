package auth

import (
	"context"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LoginUserInput holds email and password credentials.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase signs in with email and password.
type LoginUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordHasher
	tokens    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(users adapter.UserRepository, passwords adapter.PasswordHasher, tokens adapter.TokenService) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute fails with invalid credentials for Google-only accounts too, since
// they have no password until one is set through a reset.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil || !user.HasPassword() {
		return nil, invalidCredentialsError()
	}
	if err := uc.passwords.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentialsError()
	}
	return startSession(ctx, uc.tokens, user, input.RememberMe)
}
