package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// LogSender records emails instead of sending them. It stands in for Resend
// when no API key is configured, and in tests.
type LogSender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

// NewLogSender creates a new LogSender instance.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if s.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "email not sent", s.failWith)
	}

	s.sent = append(s.sent, input)
	slog.Info("Email not sent, no provider configured", "to", input.To, "subject", input.Subject)
	return &adapter.SendEmailResult{ProviderID: fmt.Sprintf("local-%d", len(s.sent))}, nil
}

// FailWith makes every following Send fail with err. A nil err restores success.
func (s *LogSender) FailWith(err error, permanent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
	s.permanent = permanent
}

// Sent returns a copy of the emails recorded so far.
func (s *LogSender) Sent() []adapter.SendEmailInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), s.sent...)
}

var _ adapter.EmailSender = (*LogSender)(nil)
