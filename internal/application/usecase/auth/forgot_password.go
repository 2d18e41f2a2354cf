package auth

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// ForgotPasswordInput is the address a reset link is requested for.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordUseCase emails a reset link. The answer is the same whether
// or not the address belongs to an account.
type ForgotPasswordUseCase struct {
	users       adapter.UserRepository
	resetTokens adapter.ResetTokenService
	mailer      adapter.Mailer
	appBaseURL  string
}

// NewForgotPasswordUseCase builds the use case. With a nil mailer the reset
// link is only logged, which is enough for local development.
func NewForgotPasswordUseCase(
	users adapter.UserRepository,
	resetTokens adapter.ResetTokenService,
	mailer adapter.Mailer,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		users:       users,
		resetTokens: resetTokens,
		mailer:      mailer,
		appBaseURL:  appBaseURL,
	}
}

// Execute queues a reset email when the account exists. The output is the
// same either way.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*MessageOutput, error) {
	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, invalidEmailError()
	}

	uc.sendResetLink(ctx, email)
	return &MessageOutput{Message: forgotPasswordMessage}, nil
}

func (uc *ForgotPasswordUseCase) sendResetLink(ctx context.Context, email string) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Forgot password requested for unknown email")
		return
	}

	grant, err := uc.resetTokens.IssueResetToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to issue reset token", "error", err, "userID", user.ID)
		return
	}
	link := uc.appBaseURL + "/reset-password?token=" + url.QueryEscape(grant.Token)

	if uc.mailer == nil {
		slog.Info("Password reset link issued without a mailer", "userID", user.ID, "resetURL", link)
		return
	}

	err = uc.mailer.EnqueuePasswordReset(ctx, adapter.PasswordResetEmail{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
		ResetURL:  link,
		ExpiresIn: "1 hour",
	})
	if err != nil {
		slog.Error("Failed to queue password reset email", "error", err, "userID", user.ID)
		return
	}
	slog.Info("Password reset email queued", "userID", user.ID)
}
