package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

// Outbox job states.
const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template pair (html and txt) an email is rendered from.
type EmailTemplateType string

// Email templates.
const (
	TemplatePasswordReset EmailTemplateType = "password_reset"
	TemplateWelcome       EmailTemplateType = "welcome"
)

const emailMaxAttempts = 3

// emailRetryDelays is indexed by the number of failed attempts so far, minus one.
var emailRetryDelays = [...]time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is a transactional email waiting in the outbox.
type EmailJob struct {
	ID            uuid.UUID
	Template      EmailTemplateType
	Recipient     string
	RecipientName string
	Subject       string
	Data          map[string]string
	Status        EmailStatus
	Attempts      int
	MaxAttempts   int
	LastError     string
	ProviderID    string
	CreatedAt     time.Time
	ScheduledAt   time.Time
	ProcessedAt   *time.Time
}

// NewEmailJob creates a pending job that is due immediately.
func NewEmailJob(template EmailTemplateType, recipient, recipientName, subject string, data map[string]string) *EmailJob {
	if data == nil {
		data = map[string]string{}
	}
	now := time.Now().UTC()
	return &EmailJob{
		ID:            uuid.New(),
		Template:      template,
		Recipient:     recipient,
		RecipientName: recipientName,
		Subject:       subject,
		Data:          data,
		Status:        EmailStatusPending,
		MaxAttempts:   emailMaxAttempts,
		CreatedAt:     now,
		ScheduledAt:   now,
	}
}

// Due reports whether the job should be picked up at now.
func (e *EmailJob) Due(now time.Time) bool {
	return e.Status == EmailStatusPending && !e.ScheduledAt.After(now)
}

// MarkProcessing flags the job as picked up by a worker.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string, at time.Time) {
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.LastError = ""
	e.ProcessedAt = &at
}

// MarkFailed records a failed attempt. The job goes back to pending with a
// retry delay unless the failure is permanent or the attempts are used up.
func (e *EmailJob) MarkFailed(err error, permanent bool, at time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &at
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts <= len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = at.Add(delay)
}
