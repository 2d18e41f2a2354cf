// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const logoutMessage = "Successfully logged out"

var authErrorStatus = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeEmailExists:           http.StatusConflict,
	domainerror.ErrCodeWeakPassword:          http.StatusBadRequest,
	domainerror.ErrCodeInvalidEmail:          http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:         http.StatusBadRequest,
	domainerror.ErrCodeInvalidResetToken:     http.StatusBadRequest,
	domainerror.ErrCodeExpiredResetToken:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidCredentials:    http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:          http.StatusUnauthorized,
	domainerror.ErrCodeInvalidToken:          http.StatusUnauthorized,
	domainerror.ErrCodeExpiredToken:          http.StatusUnauthorized,
	domainerror.ErrCodeMissingToken:          http.StatusUnauthorized,
	domainerror.ErrCodeInvalidIdentityToken:  http.StatusUnauthorized,
	domainerror.ErrCodeUnverifiedEmail:       http.StatusForbidden,
	domainerror.ErrCodeRateLimited:           http.StatusTooManyRequests,
	domainerror.ErrCodeProviderNotConfigured: http.StatusServiceUnavailable,
}

// AuthController serves the /auth endpoints.
type AuthController struct {
	register       *auth.RegisterUserUseCase
	login          *auth.LoginUserUseCase
	googleSignIn   *auth.GoogleSignInUseCase
	refresh        *auth.RefreshTokenUseCase
	logout         *auth.LogoutUserUseCase
	forgotPassword *auth.ForgotPasswordUseCase
	resetPassword  *auth.ResetPasswordUseCase
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	googleSignIn *auth.GoogleSignInUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
	forgotPassword *auth.ForgotPasswordUseCase,
	resetPassword *auth.ResetPasswordUseCase,
) *AuthController {
	return &AuthController{
		register:       register,
		login:          login,
		googleSignIn:   googleSignIn,
		refresh:        refresh,
		logout:         logout,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
	}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	req, ok := bindJSON[dto.RegisterRequest](ctx, string(domainerror.ErrCodeMissingFields))
	if !ok {
		return
	}

	out, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAuthResponse(out.AccessToken, out.RefreshToken, out.User))
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	req, ok := bindJSON[dto.LoginRequest](ctx, string(domainerror.ErrCodeMissingFields))
	if !ok {
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAuthResponse(out.AccessToken, out.RefreshToken, out.User))
}

// GoogleSignIn handles POST /auth/google. A newly created account answers 201.
func (c *AuthController) GoogleSignIn(ctx *gin.Context) {
	req, ok := bindJSON[dto.GoogleSignInRequest](ctx, string(domainerror.ErrCodeMissingFields))
	if !ok {
		return
	}

	out, err := c.googleSignIn.Execute(ctx.Request.Context(), auth.GoogleSignInInput{
		IDToken:    req.IDToken,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.GoogleAuthResponse{
		AuthResponse: dto.NewAuthResponse(out.AccessToken, out.RefreshToken, out.User),
		Created:      out.Created,
	})
}

// RefreshToken handles POST /auth/refresh.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	req, ok := bindJSON[dto.RefreshTokenRequest](ctx, string(domainerror.ErrCodeMissingToken))
	if !ok {
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	})
}

// Logout handles POST /auth/logout. It succeeds whatever the body holds.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err == nil {
		if _, err := c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken}); err != nil {
			slog.Warn("Logout failed to revoke refresh token", "error", err)
		}
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: logoutMessage})
}

// ForgotPassword handles POST /auth/forgot-password.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	req, ok := bindJSON[dto.ForgotPasswordRequest](ctx, string(domainerror.ErrCodeInvalidEmail))
	if !ok {
		return
	}

	out, err := c.forgotPassword.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{Email: req.Email})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	req, ok := bindJSON[dto.ResetPasswordRequest](ctx, string(domainerror.ErrCodeMissingFields))
	if !ok {
		return
	}

	out, err := c.resetPassword.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
}

func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		slog.Error("Auth request failed", "path", ctx.FullPath(), "error", err)
		internalError(ctx)
		return
	}

	status, ok := authErrorStatus[authErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}
