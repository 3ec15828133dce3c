package repository

import (
	"context"

	"remindme/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByUserID retrieves a user by their chat id.
	FindByUserID(ctx context.Context, userID string) (*entity.User, error)
	// Create registers a new user.
	Create(ctx context.Context, user *entity.User) error
	// Delete deletes a user by their chat id.
	Delete(ctx context.Context, userID string) error
}
