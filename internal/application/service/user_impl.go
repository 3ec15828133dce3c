package service

import (
	"context"
	"errors"
	"fmt"

	"remindme/internal/domain/entity"
	"remindme/internal/domain/repository"
	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"
)

type userService struct {
	userRepo     repository.UserRepository
	reminderRepo repository.ReminderRepository // Needed for deleting reminders on unfollow
	log          logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, reminderRepo repository.ReminderRepository, log logger.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		log:          log,
	}
}

// GetOrCreateUser finds a user by ID or creates a new one if not found.
func (s *userService) GetOrCreateUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err == nil {
		s.log.Debug(fmt.Sprintf("Found existing user %s", userID))
		return user, nil
	}
	if !errors.Is(err, appErrors.ErrUserNotFound) {
		s.log.Error(fmt.Sprintf("Failed to find user %s", userID), err)
		return nil, err
	}

	s.log.Info(fmt.Sprintf("User %s not found, creating new user.", userID))
	newUser := &entity.User{ID: userID}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		s.log.Error("Failed to create user", err)
		return nil, err
	}
	return newUser, nil
}

// DeleteUser handles the unfollow event, deleting user data.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	// Delete reminders first
	if err := s.reminderRepo.DeleteByOwnerID(ctx, userID); err != nil {
		// Log error but continue to delete the user if possible
		s.log.Error(fmt.Sprintf("Failed to delete reminders for user %s during unfollow", userID), err)
	} else {
		s.log.Info(fmt.Sprintf("Deleted reminders for user %s due to unfollow.", userID))
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete user %s during unfollow", userID), err)
		return err
	}

	s.log.Info(fmt.Sprintf("Deleted user %s due to unfollow.", userID))
	return nil
}
