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

// GoogleSignInInput carries the Google ID token.
type GoogleSignInInput struct {
	IDToken    string
	RememberMe bool
}

// GoogleSignInOutput reports whether the account was created by this sign-in.
type GoogleSignInOutput struct {
	Session
	Created bool
}

// GoogleSignInUseCase signs a user in with a verified Google identity,
// creating the account on first use.
type GoogleSignInUseCase struct {
	userRepo     adapter.UserRepository
	verifier     adapter.IdentityVerifier
	tokenService adapter.TokenService
}

// NewGoogleSignInUseCase creates a new GoogleSignInUseCase instance.
func NewGoogleSignInUseCase(
	userRepo adapter.UserRepository,
	verifier adapter.IdentityVerifier,
	tokenService adapter.TokenService,
) *GoogleSignInUseCase {
	return &GoogleSignInUseCase{
		userRepo:     userRepo,
		verifier:     verifier,
		tokenService: tokenService,
	}
}

// Execute links Google to an existing account with the same email, or
// creates one named after the Google profile.
func (uc *GoogleSignInUseCase) Execute(ctx context.Context, input GoogleSignInInput) (*GoogleSignInOutput, error) {
	if uc.verifier == nil || !uc.verifier.IsConfigured() {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeProviderNotConfigured,
			"google sign-in is not enabled",
			domainerror.ErrProviderNotConfigured,
		)
	}

	identity, err := uc.verifier.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidIdentityToken,
			"invalid google id token",
			fmt.Errorf("%w: %v", domainerror.ErrInvalidIdentityToken, err),
		)
	}

	if !identity.EmailVerified {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUnverifiedEmail,
			"google account email is not verified",
			domainerror.ErrUnverifiedEmail,
		)
	}

	email := normalizeEmail(identity.Email)
	created := false

	user, err := uc.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.AddProvider(entity.AuthProviderGoogle) {
			if err := uc.userRepo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to link google provider: %w", err)
			}
			slog.Info("Linked google provider to existing user", "userID", user.ID)
		}
	case errors.Is(err, domainerror.ErrUserNotFound):
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = entity.NewUser(email, name, "", entity.AuthProviderGoogle)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		created = true
		slog.Info("Created user from google sign-in", "userID", user.ID)
	default:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	session, err := startSession(ctx, uc.tokenService, user, input.RememberMe)
	if err != nil {
		return nil, err
	}
	return &GoogleSignInOutput{Session: *session, Created: created}, nil
}
