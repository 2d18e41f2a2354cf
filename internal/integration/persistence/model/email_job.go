package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EmailJobModel is a row of the email_jobs outbox table.
type EmailJobModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Template      string    `gorm:"type:varchar(50);not null"`
	Recipient     string    `gorm:"type:varchar(255);not null;index"`
	RecipientName string    `gorm:"type:varchar(255)"`
	Subject       string    `gorm:"type:varchar(500);not null"`
	Data          string    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"type:varchar(20);not null;index:idx_email_jobs_due,priority:1"`
	Attempts      int       `gorm:"not null"`
	MaxAttempts   int       `gorm:"not null"`
	LastError     string    `gorm:"type:text"`
	ProviderID    string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"not null"`
	ScheduledAt   time.Time `gorm:"not null;index:idx_email_jobs_due,priority:2"`
	ProcessedAt   *time.Time
}

// TableName returns the table name for EmailJobModel.
func (EmailJobModel) TableName() string {
	return "email_jobs"
}

// ToEntity converts the row back into a domain job.
func (m *EmailJobModel) ToEntity() (*entity.EmailJob, error) {
	data := map[string]string{}
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			return nil, fmt.Errorf("email job %s has malformed data: %w", m.ID, err)
		}
	}

	return &entity.EmailJob{
		ID:            m.ID,
		Template:      entity.EmailTemplateType(m.Template),
		Recipient:     m.Recipient,
		RecipientName: m.RecipientName,
		Subject:       m.Subject,
		Data:          data,
		Status:        entity.EmailStatus(m.Status),
		Attempts:      m.Attempts,
		MaxAttempts:   m.MaxAttempts,
		LastError:     m.LastError,
		ProviderID:    m.ProviderID,
		CreatedAt:     m.CreatedAt,
		ScheduledAt:   m.ScheduledAt,
		ProcessedAt:   m.ProcessedAt,
	}, nil
}

// EmailJobFromEntity builds the row for a domain job.
func EmailJobFromEntity(job *entity.EmailJob) (*EmailJobModel, error) {
	data, err := json.Marshal(job.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email job data: %w", err)
	}

	return &EmailJobModel{
		ID:            job.ID,
		Template:      string(job.Template),
		Recipient:     job.Recipient,
		RecipientName: job.RecipientName,
		Subject:       job.Subject,
		Data:          string(data),
		Status:        string(job.Status),
		Attempts:      job.Attempts,
		MaxAttempts:   job.MaxAttempts,
		LastError:     job.LastError,
		ProviderID:    job.ProviderID,
		CreatedAt:     job.CreatedAt,
		ScheduledAt:   job.ScheduledAt,
		ProcessedAt:   job.ProcessedAt,
	}, nil
}
