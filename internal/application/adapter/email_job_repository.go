package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailJobRepository is the persistent outbox the email worker drains.
type EmailJobRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns up to limit pending jobs due at now, oldest schedule first.
	GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// PurgeSent deletes sent jobs processed before the cutoff and returns how many were removed.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}
