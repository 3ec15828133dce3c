package service

import (
	"context"
	"fmt"
	"strings"

	"remindme/internal/application/dto"
	"remindme/internal/domain/constant"
	"remindme/internal/domain/entity"
	"remindme/internal/domain/repository"
	"remindme/internal/domain/timeofday"
	appErrors "remindme/internal/pkg/errors"
	"remindme/internal/pkg/logger"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	resolver     *timeofday.Resolver
	log          logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	resolver *timeofday.Resolver,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		resolver:     resolver,
		log:          log,
	}
}

// CreateReminder validates the request and stores a new reminder.
// Nothing is persisted when validation fails.
func (s *reminderService) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (dto.ReminderResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return dto.ReminderResponse{}, fmt.Errorf("%w: reminder text is empty", appErrors.ErrMissingArguments)
	}

	repeat, err := constant.ParseRepeatToken(req.RepeatToken)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	timeOfDay, err := s.resolver.Normalize(req.Time)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	reminder := &entity.Reminder{
		OwnerID:     req.OwnerID,
		Text:        text,
		TimeOfDay:   timeOfDay,
		RepeatHours: repeat,
	}
	id, err := s.reminderRepo.Create(ctx, reminder)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder for owner %s", req.OwnerID), err)
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %s for owner %s at %s (repeat: %q)", id, req.OwnerID, timeOfDay, repeat.Token()))
	return dto.ToReminderResponse(reminder), nil
}

// ListReminders retrieves an owner's reminders.
func (s *reminderService) ListReminders(ctx context.Context, ownerID string) ([]dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for owner %s", ownerID), err)
		return nil, err
	}
	return dto.ToReminderResponseList(reminders), nil
}

// CompleteReminder removes the reminder shown at req.Index by the list command.
// The list is fetched again here, so the index refers to the current order;
// a concurrent change between the user's list and this call can shift it.
func (s *reminderService) CompleteReminder(ctx context.Context, req dto.CompleteReminderRequest) (dto.ReminderResponse, error) {
	reminders, err := s.reminderRepo.FindByOwnerID(ctx, req.OwnerID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for owner %s during complete", req.OwnerID), err)
		return dto.ReminderResponse{}, err
	}

	if req.Index < 1 || req.Index > len(reminders) {
		return dto.ReminderResponse{}, fmt.Errorf("%w: %d (have %d)", appErrors.ErrInvalidIndex, req.Index, len(reminders))
	}

	target := reminders[req.Index-1]
	if err := s.reminderRepo.Delete(ctx, target.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete reminder %s for owner %s", target.ID, req.OwnerID), err)
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Completed reminder %s (#%d) for owner %s", target.ID, req.Index, req.OwnerID))
	return dto.ToReminderResponse(target), nil
}
