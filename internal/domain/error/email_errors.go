package error

import "errors"

// ErrEmailJobNotFound is returned when an outbox job does not exist.
var ErrEmailJobNotFound = errors.New("email job not found")

// EmailErrorCode is EMAIL-XXYYYY. Only ErrCodePermanentEmailFailure changes
// worker behaviour; the rest end up in logs and email_jobs.last_error.
type EmailErrorCode string

// Email error codes.
const (
	// outbox
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeEmailJobNotFound EmailErrorCode = "EMAIL-010002"

	// delivery
	ErrCodeEmailSendFailed       EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// templates
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError is a coded error raised while delivering email.
type EmailError = Coded[EmailErrorCode]

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return newCoded(code, message, err)
}
