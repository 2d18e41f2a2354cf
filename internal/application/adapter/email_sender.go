package adapter

import "context"

// SendEmailInput is a fully rendered message ready for the provider.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult carries the message ID assigned by the provider.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender delivers one message. Errors carrying
// ErrCodePermanentEmailFailure are not worth retrying.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// Mailer queues transactional emails for the background worker.
type Mailer interface {
	EnqueuePasswordReset(ctx context.Context, email PasswordResetEmail) error
	EnqueueWelcome(ctx context.Context, email WelcomeEmail) error
}

// PasswordResetEmail holds what the reset template needs.
type PasswordResetEmail struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// WelcomeEmail holds what the welcome template needs.
type WelcomeEmail struct {
	UserEmail string
	UserName  string
	AppURL    string
}
