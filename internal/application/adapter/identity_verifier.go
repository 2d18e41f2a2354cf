package adapter

import "context"

// ExternalIdentity is the verified identity returned by a third-party provider.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IdentityVerifier validates identity tokens issued by a third-party provider.
type IdentityVerifier interface {
	// Verify checks the token signature and audience and returns the identity it asserts.
	Verify(ctx context.Context, token string) (*ExternalIdentity, error)

	// IsConfigured reports whether the provider can be used.
	IsConfigured() bool
}
