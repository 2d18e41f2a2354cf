package adapters

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// resetTokenTTL is how long an emailed reset link stays usable.
const resetTokenTTL = time.Hour

var errUnknownResetToken = errors.New("reset token not found or already used")

// resetTokenService issues opaque single-use reset tokens. Expiry is reported
// back to the caller instead of being filtered here, so an expired link can be
// told apart from an unknown one.
type resetTokenService struct {
	store persistence.TokenRepository
	now   func() time.Time
}

// NewResetTokenService creates a new password reset token service instance.
func NewResetTokenService(store persistence.TokenRepository) adapter.ResetTokenService {
	return &resetTokenService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// IssueResetToken stores a new single-use reset token for the user.
func (s *resetTokenService) IssueResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}

	issued := &adapter.ResetToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		UserID:    userID,
		Email:     email,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}

	if err := s.store.SavePasswordResetToken(ctx, issued.Token, userID, email, issued.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}
	return issued, nil
}

// LookupResetToken resolves a token that is neither used nor expired.
func (s *resetTokenService) LookupResetToken(ctx context.Context, token string) (*adapter.ResetToken, error) {
	stored, err := s.store.GetPasswordResetToken(ctx, token)
	switch {
	case err != nil:
		return nil, fmt.Errorf("failed to load reset token: %w", err)
	case stored == nil:
		return nil, errUnknownResetToken
	}

	return &adapter.ResetToken{
		Token:     token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// ConsumeResetToken claims the token so it cannot be used again.
func (s *resetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	return s.store.ClaimPasswordResetToken(ctx, token)
}
