package error

import "errors"

// Auth domain errors.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidResetToken     = errors.New("invalid or expired password reset token")
	ErrWeakPassword          = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrInvalidIdentityToken  = errors.New("invalid identity token")
	ErrUnverifiedEmail       = errors.New("email not verified by identity provider")
	ErrProviderNotConfigured = errors.New("sign-in provider not configured")
	ErrInvalidConfirmation   = errors.New("account deletion not confirmed")
)

// AuthErrorCode is AUTH-XXYYYY, XX being the flow and YYYY the case.
type AuthErrorCode string

// Auth error codes.
const (
	// sign-up
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010002"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010003"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010004"

	// sign-in
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// session tokens
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// password reset
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"

	// Google sign-in
	ErrCodeInvalidIdentityToken  AuthErrorCode = "AUTH-050001"
	ErrCodeUnverifiedEmail       AuthErrorCode = "AUTH-050002"
	ErrCodeProviderNotConfigured AuthErrorCode = "AUTH-050003"

	// account deletion
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-060001"
)

// AuthError is a coded error raised by the auth use cases.
type AuthError = Coded[AuthErrorCode]

// NewAuthError creates a new AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return newCoded(code, message, err)
}
