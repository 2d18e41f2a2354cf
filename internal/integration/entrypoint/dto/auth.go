package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Request bodies of the /auth endpoints.
type (
	// RegisterRequest is the body of POST /auth/register.
	RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,min=1,max=100"`
		Password string `json:"password" binding:"required,min=8"`
	}

	// LoginRequest is the body of POST /auth/login.
	LoginRequest struct {
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}

	// GoogleSignInRequest is the body of POST /auth/google.
	GoogleSignInRequest struct {
		IDToken    string `json:"id_token" binding:"required"`
		RememberMe bool   `json:"remember_me"`
	}

	// RefreshTokenRequest is the body of POST /auth/refresh.
	RefreshTokenRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	// LogoutRequest is the body of POST /auth/logout.
	LogoutRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	// ForgotPasswordRequest is the body of POST /auth/forgot-password.
	ForgotPasswordRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	// ResetPasswordRequest is the body of POST /auth/reset-password.
	ResetPasswordRequest struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}

	// DeleteAccountRequest carries the password, or for accounts without
	// one the confirmation text.
	DeleteAccountRequest struct {
		Password     string `json:"password"`
		Confirmation string `json:"confirmation"`
	}
)

// TokenResponse is a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by register, login and Google sign-in.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// GoogleAuthResponse adds whether the sign-in created the account.
type GoogleAuthResponse struct {
	AuthResponse
	Created bool `json:"created"`
}

// UserResponse never exposes the password hash, only whether one is set.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Providers   []string  `json:"providers"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAuthResponse creates a new AuthResponse for the signed-in user.
func NewAuthResponse(accessToken, refreshToken string, user *entity.User) AuthResponse {
	return AuthResponse{
		TokenResponse: TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken},
		User:          ToUserResponse(user),
	}
}

// ToUserResponse converts a user entity to its public representation.
func ToUserResponse(user *entity.User) UserResponse {
	providers := make([]string, 0, len(user.Providers))
	for _, p := range user.Providers {
		providers = append(providers, string(p))
	}

	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		Providers:   providers,
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
	}
}
