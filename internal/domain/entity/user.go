// Package entity holds the domain types shared by every use case.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how a user is able to sign in.
type AuthProvider string

// Sign-in providers.
const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// User represents a user in the Expense Tracker system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string // Empty for accounts created through Google sign-in
	Providers    []AuthProvider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, provider AuthProvider) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Providers:    []AuthProvider{provider},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasProvider reports whether the user can sign in with the given provider.
func (u *User) HasProvider(provider AuthProvider) bool {
	for _, p := range u.Providers {
		if p == provider {
			return true
		}
	}
	return false
}

// AddProvider links a sign-in provider to the user. It returns false when the
// provider was already linked.
func (u *User) AddProvider(provider AuthProvider) bool {
	if u.HasProvider(provider) {
		return false
	}
	u.Providers = append(u.Providers, provider)
	u.UpdatedAt = time.Now().UTC()
	return true
}

// HasPassword reports whether the user has a password set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
