// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// Context keys set by Authenticate.
const (
	UserIDKey    ContextKey = "user_id"
	UserEmailKey ContextKey = "user_email"

	// AccessTokenQueryParam carries the access token for clients that cannot
	// set headers, such as a browser EventSource.
	AccessTokenQueryParam = "access_token"
)

// AuthMiddleware authenticates requests with an access token.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate stores the user ID and email of a valid access token in the
// context and rejects the request with 401 otherwise.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, problem := bearerToken(c)
		if problem != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, problem)
			return
		}

		claims, err := m.tokenService.ParseAccessToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)
		c.Next()
	}
}

// bearerToken reads the token from the Authorization header, falling back to
// the access_token query parameter.
func bearerToken(c *gin.Context) (string, *dto.ErrorResponse) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if token := c.Query(AccessTokenQueryParam); token != "" {
			return token, nil
		}
		return "", &dto.ErrorResponse{
			Error: "Authorization header is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", &dto.ErrorResponse{
			Error: "Invalid authorization header format",
			Code:  string(domainerror.ErrCodeInvalidToken),
		}
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", &dto.ErrorResponse{
			Error: "Token is required",
			Code:  string(domainerror.ErrCodeMissingToken),
		}
	}
	return token, nil
}

// GetUserIDFromContext returns the authenticated user's ID.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(UserIDKey))
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := id.(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext returns the email of the authenticated user.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	return c.GetString(string(UserEmailKey)), c.GetString(string(UserEmailKey)) != ""
}
