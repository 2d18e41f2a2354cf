package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type emailJobRepository struct {
	db *gorm.DB
}

// NewEmailJobRepository creates the gorm backed email outbox.
func NewEmailJobRepository(db *gorm.DB) adapter.EmailJobRepository {
	return &emailJobRepository{db: db}
}

// Create stores a new outbox job.
func (r *emailJobRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailJobFromEntity(job)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to encode email job", err)
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to create email job", err)
	}
	return nil
}

// GetPendingJobs returns up to limit jobs that are due at now, oldest first.
func (r *emailJobRepository) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailJobModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, 0, len(rows))
	for i := range rows {
		job, err := rows[i].ToEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Update persists the job status and delivery bookkeeping.
func (r *emailJobRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailJobFromEntity(job)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(row).Error
}

// GetByID returns the job or ErrEmailJobNotFound.
func (r *emailJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailJobModel
	err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrEmailJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity()
}

// PurgeSent removes sent jobs older than before and reports how many went.
func (r *emailJobRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", entity.EmailStatusSent, before).
		Delete(&model.EmailJobModel{})
	return result.RowsAffected, result.Error
}
