package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/api/idtoken"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type memoryTokenRepository struct {
	refresh map[string]bool
	owners  map[string]uuid.UUID
	resets  map[string]*model.PasswordResetTokenModel
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{
		refresh: make(map[string]bool),
		owners:  make(map[string]uuid.UUID),
		resets:  make(map[string]*model.PasswordResetTokenModel),
	}
}

func (r *memoryTokenRepository) SaveRefreshToken(_ context.Context, token string, userID uuid.UUID, _ time.Time) error {
	r.refresh[token] = true
	r.owners[token] = userID
	return nil
}

func (r *memoryTokenRepository) ClaimRefreshToken(_ context.Context, token string) error {
	if !r.refresh[token] {
		return domainerror.ErrInvalidToken
	}
	r.refresh[token] = false
	return nil
}

func (r *memoryTokenRepository) RevokeRefreshToken(_ context.Context, token string) error {
	r.refresh[token] = false
	return nil
}

func (r *memoryTokenRepository) RevokeUserRefreshTokens(_ context.Context, userID uuid.UUID) error {
	for token, owner := range r.owners {
		if owner == userID {
			r.refresh[token] = false
		}
	}
	return nil
}

func (r *memoryTokenRepository) SavePasswordResetToken(_ context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	r.resets[token] = &model.PasswordResetTokenModel{UserID: userID, Email: email, ExpiresAt: expiresAt}
	return nil
}

func (r *memoryTokenRepository) GetPasswordResetToken(_ context.Context, token string) (*model.PasswordResetTokenModel, error) {
	return r.resets[token], nil
}

func (r *memoryTokenRepository) ClaimPasswordResetToken(_ context.Context, token string) error {
	if _, ok := r.resets[token]; !ok {
		return domainerror.ErrInvalidResetToken
	}
	delete(r.resets, token)
	return nil
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepository()
	service := NewTokenService("test-secret", repo)
	userID := uuid.New()

	pair, err := service.IssueSession(ctx, userID, "user@example.com", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := service.ParseAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID || claims.Email != "user@example.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		if _, err := service.ParseAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected refresh token to be rejected as access token")
		}
		if _, err := service.ParseRefreshToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected access token to be rejected as refresh token")
		}
	})

	t.Run("remember me extends the access token", func(t *testing.T) {
		long, err := service.IssueSession(ctx, userID, "user@example.com", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := service.ParseAccessToken(ctx, long.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Until(claims.ExpiresAt) < 24*time.Hour {
			t.Errorf("expected a multi-day access token, expires at %v", claims.ExpiresAt)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := service.ParseAccessToken(ctx, "not.a.jwt"); err == nil {
			t.Error("expected malformed token to be rejected")
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewTokenService("other-secret", repo)
		if _, err := other.ParseAccessToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected signature validation to fail")
		}
	})

	t.Run("refresh tokens are unique", func(t *testing.T) {
		second, err := service.IssueSession(ctx, userID, "user@example.com", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.RefreshToken == pair.RefreshToken {
			t.Error("expected distinct refresh tokens")
		}
	})

	t.Run("refresh token can be claimed once", func(t *testing.T) {
		once, err := service.IssueSession(ctx, userID, "user@example.com", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := service.ClaimRefreshToken(ctx, once.RefreshToken); err != nil {
			t.Fatalf("expected first claim to succeed, got %v", err)
		}
		if err := service.ClaimRefreshToken(ctx, once.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("invalidate all user tokens", func(t *testing.T) {
		if err := service.RevokeSessions(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := service.ClaimRefreshToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected refresh token to be invalidated, got %v", err)
		}
	})
}

func TestPasswordResetTokenService(t *testing.T) {
	ctx := context.Background()
	service := NewResetTokenService(newMemoryTokenRepository())
	userID := uuid.New()

	generated, err := service.IssueResetToken(ctx, userID, "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(generated.Token) != 43 {
		t.Errorf("expected 43 url-safe chars, got %d", len(generated.Token))
	}
	if ttl := time.Until(generated.ExpiresAt); ttl <= 59*time.Minute || ttl > time.Hour {
		t.Errorf("expected expiry about an hour away, got %v", ttl)
	}

	validated, err := service.LookupResetToken(ctx, generated.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if validated.UserID != userID || validated.Token != generated.Token {
		t.Errorf("unexpected token: %+v", validated)
	}

	if err := service.ConsumeResetToken(ctx, generated.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.LookupResetToken(ctx, generated.Token); err == nil {
		t.Error("expected used token to be rejected")
	}
	if err := service.ConsumeResetToken(ctx, generated.Token); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected second consume to fail, got %v", err)
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher()

	t.Run("hash round trip", func(t *testing.T) {
		hash, err := hasher.Hash("password1")
		if err != nil {
			t.Fatalf("Hash() error = %v", err)
		}
		if err := hasher.Compare(hash, "password1"); err != nil {
			t.Errorf("expected matching password, got %v", err)
		}
		if err := hasher.Compare(hash, "password2"); err == nil {
			t.Error("expected mismatch to be reported")
		}
	})

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "password1", wantErr: false},
		{name: "too short", password: "pass1", wantErr: true},
		{name: "no digit", password: "passwordonly", wantErr: true},
		{name: "no letter", password: "1234567890", wantErr: true},
		{name: "beyond bcrypt input", password: strings.Repeat("a1", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.CheckStrength(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckStrength(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCategory string
		wantErr      bool
	}{
		{name: "plain json", text: `{"category":"Food","confidence":0.9,"reasoning":"groceries"}`, wantCategory: "Food"},
		{name: "fenced json", text: "```json\n{\"category\":\"Bills\",\"confidence\":0.7}\n```", wantCategory: "Bills"},
		{name: "missing category", text: `{"confidence":0.5}`, wantErr: true},
		{name: "not json", text: "Food", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestion(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSuggestion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Category != tt.wantCategory {
				t.Errorf("expected %s, got %s", tt.wantCategory, got.Category)
			}
		})
	}

	t.Run("confidence is clamped", func(t *testing.T) {
		got, err := parseSuggestion(`{"category":"Food","confidence":3}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Confidence != 1 {
			t.Errorf("expected confidence 1, got %v", got.Confidence)
		}
	})
}

func TestBuildSuggestionPrompt(t *testing.T) {
	prompt := buildSuggestionPrompt(adapter.CategorySuggestionRequest{
		Type:       entity.TransactionTypeExpense,
		Notes:      "weekly groceries",
		Amount:     decimal.RequireFromString("42.5"),
		Candidates: entity.SuggestedCategories(entity.TransactionTypeExpense),
	})

	for _, want := range []string{"- Food\n", "- Other\n", "42.50", "weekly groceries", "expense"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestGeminiCategorySuggester_NotConfigured(t *testing.T) {
	suggester := NewGeminiCategorySuggester("", "")
	if suggester.IsAvailable() {
		t.Fatal("expected suggester without key to be unavailable")
	}
	if _, err := suggester.Suggest(context.Background(), adapter.CategorySuggestionRequest{}); err == nil {
		t.Error("expected error when not configured")
	}
}

func TestGoogleIdentityVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		verifier := NewGoogleIdentityVerifier("")
		if verifier.IsConfigured() {
			t.Fatal("expected verifier without client ID to be unconfigured")
		}
		if _, err := verifier.Verify(ctx, "token"); err == nil {
			t.Error("expected error when not configured")
		}
	})

	t.Run("extracts claims", func(t *testing.T) {
		verifier := NewGoogleIdentityVerifier("client-id")
		verifier.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			if audience != "client-id" {
				t.Errorf("expected audience client-id, got %s", audience)
			}
			return &idtoken.Payload{
				Subject: "google-123",
				Claims: map[string]interface{}{
					"email":          "user@gmail.com",
					"email_verified": true,
					"name":           "Google User",
				},
			}, nil
		}

		identity, err := verifier.Verify(ctx, "token")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.Subject != "google-123" || identity.Email != "user@gmail.com" || !identity.EmailVerified || identity.Name != "Google User" {
			t.Errorf("unexpected identity: %+v", identity)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		verifier := NewGoogleIdentityVerifier("client-id")
		verifier.validate = func(context.Context, string, string) (*idtoken.Payload, error) {
			return nil, errors.New("bad signature")
		}
		if _, err := verifier.Verify(ctx, "token"); err == nil {
			t.Error("expected validation error")
		}
	})
}
