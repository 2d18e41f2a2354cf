package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by db.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create maps a unique violation on email to ErrEmailAlreadyExists.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerror.ErrEmailAlreadyExists
	}
	return err
}

// Update saves the user row.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.UserFromEntity(user)).Error
}

// FindByID returns the user or ErrUserNotFound.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail returns the user or ErrUserNotFound.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// EmailTaken reports whether an account already uses email.
func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", email).Limit(1).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// Delete permanently removes the user together with its transactions and
// tokens, in one database transaction. The email is free for a new sign-up
// afterwards.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&model.TransactionModel{},
			&model.RefreshTokenModel{},
			&model.PasswordResetTokenModel{},
		}
		for _, table := range owned {
			if err := tx.Unscoped().Where("user_id = ?", id).Delete(table).Error; err != nil {
				return fmt.Errorf("failed to delete user data: %w", err)
			}
		}

		res := tx.Unscoped().Where("id = ?", id).Delete(&model.UserModel{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domainerror.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return row.ToEntity(), nil
}
