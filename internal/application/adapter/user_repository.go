package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UserRepository persists accounts. Lookups return ErrUserNotFound when no
// account matches.
type UserRepository interface {
	// Create fails with ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail expects an already normalized address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	// Delete permanently removes the account and everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
