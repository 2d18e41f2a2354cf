package adapters

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// GoogleIdentityVerifier implements adapter.IdentityVerifier for Google ID tokens.
type GoogleIdentityVerifier struct {
	clientID string
	validate tokenValidator
}

// NewGoogleIdentityVerifier creates a verifier accepting tokens issued for clientID.
func NewGoogleIdentityVerifier(clientID string) *GoogleIdentityVerifier {
	return &GoogleIdentityVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// IsConfigured reports whether a Google client ID is set.
func (v *GoogleIdentityVerifier) IsConfigured() bool {
	return v.clientID != ""
}

// Verify validates the ID token signature and audience and extracts the identity.
func (v *GoogleIdentityVerifier) Verify(ctx context.Context, token string) (*adapter.ExternalIdentity, error) {
	if !v.IsConfigured() {
		return nil, fmt.Errorf("google sign-in is not configured")
	}

	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}

	return identityFromPayload(payload), nil
}

// identityFromPayload reads the standard OpenID claims from a Google token payload.
func identityFromPayload(payload *idtoken.Payload) *adapter.ExternalIdentity {
	identity := &adapter.ExternalIdentity{
		Subject: payload.Subject,
	}

	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}

	switch verified := payload.Claims["email_verified"].(type) {
	case bool:
		identity.EmailVerified = verified
	case string:
		identity.EmailVerified = verified == "true"
	}

	return identity
}
