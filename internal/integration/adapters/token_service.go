// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

const tokenIssuer = "expense-tracker"

// tokenKind tells access and refresh tokens apart inside the signed claims.
type tokenKind string

const (
	accessToken  tokenKind = "access"
	refreshToken tokenKind = "refresh"
)

// lifetimes holds how long each token kind lives, without and with remember-me.
var lifetimes = map[tokenKind][2]time.Duration{
	accessToken:  {15 * time.Minute, 7 * 24 * time.Hour},
	refreshToken: {7 * 24 * time.Hour, 30 * 24 * time.Hour},
}

func lifetime(kind tokenKind, rememberMe bool) time.Duration {
	if rememberMe {
		return lifetimes[kind][1]
	}
	return lifetimes[kind][0]
}

var errWrongTokenKind = errors.New("token kind mismatch")

// sessionClaims are the claims signed into every issued token.
type sessionClaims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	TokenType tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService signs HS256 tokens and keeps refresh tokens revocable through the repository.
type tokenService struct {
	secret []byte
	store  persistence.TokenRepository
	now    func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, store persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// IssueSession signs an access token and stores a new refresh token.
func (s *tokenService) IssueSession(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.SessionTokens, error) {
	issuedAt := s.now()

	access, _, err := s.sign(userID, email, accessToken, issuedAt, lifetime(accessToken, rememberMe))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, refreshExpiry, err := s.sign(userID, email, refreshToken, issuedAt, lifetime(refreshToken, rememberMe))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := s.store.SaveRefreshToken(ctx, refresh, userID, refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.SessionTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (s *tokenService) ParseAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, accessToken)
}

// ParseRefreshToken only checks the signature and kind. Revocation is
// checked separately through ClaimRefreshToken.
func (s *tokenService) ParseRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, refreshToken)
}

// RevokeRefreshToken revokes a single refresh token.
func (s *tokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.store.RevokeRefreshToken(ctx, token)
}

// RevokeSessions revokes every refresh token of the user.
func (s *tokenService) RevokeSessions(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeUserRefreshTokens(ctx, userID)
}

// ClaimRefreshToken revokes the token, failing if it was already used.
func (s *tokenService) ClaimRefreshToken(ctx context.Context, token string) error {
	return s.store.ClaimRefreshToken(ctx, token)
}

// sign returns the signed token together with its expiry.
func (s *tokenService) sign(userID uuid.UUID, email string, kind tokenKind, issuedAt time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := issuedAt.Add(ttl)
	subject := userID.String()

	claims := sessionClaims{
		UserID:    subject,
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *tokenService) verify(token string, want tokenKind) (*adapter.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: expected %s token, got %q", errWrongTokenKind, want, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
