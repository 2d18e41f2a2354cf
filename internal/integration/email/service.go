package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Service turns application email requests into outbox jobs. Nothing is sent
// here; the Worker delivers them.
type Service struct {
	outbox     adapter.EmailJobRepository
	appBaseURL string
}

// NewService creates a new Service instance.
func NewService(outbox adapter.EmailJobRepository, appBaseURL string) *Service {
	return &Service{outbox: outbox, appBaseURL: appBaseURL}
}

// EnqueuePasswordReset queues the reset email in the outbox.
func (s *Service) EnqueuePasswordReset(ctx context.Context, input adapter.PasswordResetEmail) error {
	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		"Reset your password - Expense Tracker",
		map[string]string{
			"user_name":  input.UserName,
			"reset_url":  input.ResetURL,
			"expires_in": input.ExpiresIn,
		},
	))
}

// EnqueueWelcome links to input.AppURL, or to the configured app URL when empty.
func (s *Service) EnqueueWelcome(ctx context.Context, input adapter.WelcomeEmail) error {
	appURL := input.AppURL
	if appURL == "" {
		appURL = s.appBaseURL
	}

	return s.enqueue(ctx, entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("Welcome to Expense Tracker, %s", input.UserName),
		map[string]string{
			"user_name": input.UserName,
			"app_url":   appURL,
		},
	))
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := s.outbox.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.Template),
			err,
		)
	}
	return nil
}

var _ adapter.Mailer = (*Service)(nil)
