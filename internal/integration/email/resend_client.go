// Package email queues transactional emails and delivers them through Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ResendClient sends email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a Resend sender. A non-empty baseURL replaces the API endpoint.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		endpoint, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base URL: %w", err)
		}
		client.BaseURL = endpoint
	}

	return &ResendClient{
		client: client,
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}, nil
}

// Send delivers the message through the Resend API.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if isPermanentError(err) {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "resend rejected email", err)
	}

	return &adapter.SendEmailResult{ProviderID: sent.Id}, nil
}

var statusCodePattern = regexp.MustCompile(`\b([45]\d\d)\b`)

// isPermanentError reports whether retrying the request cannot succeed.
// Client errors other than 408 and 429 are permanent; server errors and
// transport failures are not.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	if m := statusCodePattern.FindStringSubmatch(msg); m != nil {
		return m[1][0] == '4' && m[1] != "408" && m[1] != "429"
	}

	for _, hint := range []string{"validation", "unauthorized", "forbidden", "invalid"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
