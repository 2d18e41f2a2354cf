package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// RegisterUserInput holds the sign-up form fields.
type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
}

// RegisterUserUseCase creates a password account and signs it in.
type RegisterUserUseCase struct {
	users      adapter.UserRepository
	passwords  adapter.PasswordHasher
	tokens     adapter.TokenService
	mailer     adapter.Mailer
	appBaseURL string
}

// NewRegisterUserUseCase builds the use case. A nil mailer skips the welcome email.
func NewRegisterUserUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordHasher,
	tokens adapter.TokenService,
	mailer adapter.Mailer,
	appBaseURL string,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		users:      users,
		passwords:  passwords,
		tokens:     tokens,
		mailer:     mailer,
		appBaseURL: appBaseURL,
	}
}

// Execute validates the form, creates the user and starts a session.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	switch {
	case name == "":
		return nil, domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "name is required", nil)
	case !isValidEmail(email):
		return nil, invalidEmailError()
	case uc.passwords.CheckStrength(input.Password) != nil:
		return nil, weakPasswordError()
	}

	taken, err := uc.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, hash, entity.AuthProviderEmail)
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := startSession(ctx, uc.tokens, user, false)
	if err != nil {
		return nil, err
	}

	if uc.mailer != nil {
		welcome := adapter.WelcomeEmail{UserEmail: user.Email, UserName: user.Name, AppURL: uc.appBaseURL}
		if err := uc.mailer.EnqueueWelcome(ctx, welcome); err != nil {
			slog.Error("Failed to queue welcome email", "error", err, "userID", user.ID)
		}
	}

	return session, nil
}
