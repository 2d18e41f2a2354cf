// Package auth holds the account and session use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// Sent for every forgot-password request, registered or not.
	forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"
	resetPasswordMessage  = "Password has been successfully reset"
	logoutMessage         = "Successfully logged out"
	weakPasswordMessage   = "password must be at least 8 characters and contain a letter and a digit"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Session is what every sign-in flow returns.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// MessageOutput is a confirmation shown to the user as is.
type MessageOutput struct {
	Message string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func startSession(ctx context.Context, tokens adapter.TokenService, user *entity.User, rememberMe bool) (*Session, error) {
	pair, err := tokens.IssueSession(ctx, user.ID, user.Email, rememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session tokens: %w", err)
	}
	return &Session{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}, nil
}

// Unknown emails and wrong passwords share one answer.
func invalidCredentialsError() error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid email or password", domainerror.ErrInvalidCredentials)
}

func invalidEmailError() error {
	return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
}

func weakPasswordError() error {
	return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, weakPasswordMessage, domainerror.ErrWeakPassword)
}
