package service

import (
	"context"

	"remindme/internal/domain/entity"
)

//go:generate mockgen -source=user.go -destination=../../../mocks/user_service.go -package=mocks

// UserService defines the interface for user-related business logic.
type UserService interface {
	// GetOrCreateUser finds a user by ID or creates a new one if not found.
	GetOrCreateUser(ctx context.Context, userID string) (*entity.User, error)
	// DeleteUser removes a user and every reminder they own (unfollow / block).
	DeleteUser(ctx context.Context, userID string) error
}
