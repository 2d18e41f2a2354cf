// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// TokenRepository persists refresh and password reset tokens. Raw token
// strings never reach the database, only their SHA-256 digest.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// ClaimRefreshToken revokes the token if it is unrevoked and unexpired.
	// It fails with ErrInvalidToken otherwise, so of several concurrent claims
	// of one token exactly one succeeds.
	ClaimRefreshToken(ctx context.Context, token string) error

	// RevokeRefreshToken revokes a single refresh token. Unknown tokens are ignored.
	RevokeRefreshToken(ctx context.Context, token string) error

	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error

	// GetPasswordResetToken returns the unused token, or nil when none matches.
	// Expired tokens are still returned.
	GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetTokenModel, error)

	// ClaimPasswordResetToken marks an unused, unexpired reset token as used.
	// It fails with ErrInvalidResetToken when there is nothing left to claim.
	ClaimPasswordResetToken(ctx context.Context, token string) error
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type tokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// SaveRefreshToken stores the hash of a freshly issued refresh token.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: r.now(),
	}).Error
}

// ClaimRefreshToken revokes the token if it is still live. It returns
// ErrInvalidToken when another caller claimed it first or it was never valid.
func (r *tokenRepository) ClaimRefreshToken(ctx context.Context, token string) error {
	now := r.now()
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hashToken(token), now).
		Update("revoked_at", now)
	return claimed(result, domainerror.ErrInvalidToken)
}

// RevokeRefreshToken marks a single token revoked. Unknown tokens are ignored.
func (r *tokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.revoke(ctx, "token_hash = ?", hashToken(token))
}

// RevokeUserRefreshTokens revokes every live refresh token of the user.
func (r *tokenRepository) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, "user_id = ?", userID)
}

// revoke stamps revoked_at on every live refresh token matching the condition.
func (r *tokenRepository) revoke(ctx context.Context, query string, arg any) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where(query, arg).
		Where("revoked_at IS NULL").
		Update("revoked_at", r.now()).Error
}

// SavePasswordResetToken stores the hash of a reset token.
func (r *tokenRepository) SavePasswordResetToken(ctx context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: hashToken(token),
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: r.now(),
	}).Error
}

// GetPasswordResetToken looks up an unused token by hash, expired or not.
func (r *tokenRepository) GetPasswordResetToken(ctx context.Context, token string) (*model.PasswordResetTokenModel, error) {
	var stored model.PasswordResetTokenModel
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND used_at IS NULL", hashToken(token)).
		Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ClaimPasswordResetToken marks an unused, unexpired reset token as used. It
// returns ErrInvalidResetToken when there is nothing left to claim.
func (r *tokenRepository) ClaimPasswordResetToken(ctx context.Context, token string) error {
	now := r.now()
	result := r.db.WithContext(ctx).
		Model(&model.PasswordResetTokenModel{}).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", hashToken(token), now).
		Update("used_at", now)
	return claimed(result, domainerror.ErrInvalidResetToken)
}

// claimed turns a conditional update into an error: the query error if any,
// otherwise missing when no row matched.
func claimed(result *gorm.DB, missing error) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return missing
	}
	return nil
}
