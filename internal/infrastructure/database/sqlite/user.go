package sqlite

import (
	"context"
	"errors"
	"fmt"

	"remindme/internal/domain/entity"
	"remindme/internal/domain/repository"
	appErrors "remindme/internal/pkg/errors"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByUserID retrieves a user by their chat id.
func (r *userRepository) FindByUserID(ctx context.Context, userID string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("%w: failed to find user by user_id %s: %v", appErrors.ErrDatabaseOperation, userID, err)
	}
	return &user, nil
}

// Create registers a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("%w: failed to create user %s: %v", appErrors.ErrDatabaseOperation, user.ID, err)
	}
	return nil
}

// Delete deletes a user by their chat id.
func (r *userRepository) Delete(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.User{}).Error; err != nil {
		return fmt.Errorf("%w: failed to delete user %s: %v", appErrors.ErrDatabaseOperation, userID, err)
	}
	return nil
}
