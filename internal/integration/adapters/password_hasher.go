package adapters

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooLong  = errors.New("password must be at most 72 bytes long")
	errPasswordTooWeak  = errors.New("password must contain at least one letter and one digit")
)

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt backed PasswordHasher.
func NewPasswordHasher() adapter.PasswordHasher {
	return bcryptHasher{cost: bcryptCost}
}

// Hash returns the bcrypt hash of password.
func (h bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hash), err
}

// Compare fails unless password matches hash.
func (h bcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// CheckStrength enforces the password policy.
func (h bcryptHasher) CheckStrength(password string) error {
	switch {
	case utf8.RuneCountInString(password) < minPasswordLength:
		return errPasswordTooShort
	case len(password) > maxPasswordBytes:
		return errPasswordTooLong
	}

	letter := false
	digit := false
	for _, r := range password {
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}
	if !letter || !digit {
		return errPasswordTooWeak
	}
	return nil
}
