package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher stores and checks account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns an error when password does not match hash.
	Compare(hash, password string) error
	// CheckStrength rejects passwords too weak to be accepted at sign-up or reset.
	CheckStrength(password string) error
}

// SessionTokens is what a successful sign-in hands back to the client.
type SessionTokens struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identify the user a token was issued to.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and checks session tokens. Refresh tokens are
// revocable; access tokens live until they expire.
type TokenService interface {
	IssueSession(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*SessionTokens, error)
	ParseAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	// ParseRefreshToken checks signature and expiry only. Revocation is
	// checked by ClaimRefreshToken.
	ParseRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
	// ClaimRefreshToken revokes a live refresh token and fails with
	// ErrInvalidToken when it was already revoked. At most one caller can
	// claim a given token.
	ClaimRefreshToken(ctx context.Context, token string) error
	RevokeRefreshToken(ctx context.Context, token string) error
	// RevokeSessions signs the user out everywhere.
	RevokeSessions(ctx context.Context, userID uuid.UUID) error
}

// ResetToken is a single-use password reset grant.
type ResetToken struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// ResetTokenService manages password reset grants. LookupResetToken returns
// expired grants too so callers can report expiry separately.
type ResetTokenService interface {
	IssueResetToken(ctx context.Context, userID uuid.UUID, email string) (*ResetToken, error)
	LookupResetToken(ctx context.Context, token string) (*ResetToken, error)
	// ConsumeResetToken claims the grant and fails with ErrInvalidResetToken
	// when it was already used or has expired.
	ConsumeResetToken(ctx context.Context, token string) error
}
