package service

import (
	"context"

	"remindme/internal/application/dto"
)

// ReminderService defines the interface for reminder-related business logic.
type ReminderService interface {
	// CreateReminder validates the repeat token and time, then stores a new reminder.
	CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (dto.ReminderResponse, error)
	// ListReminders retrieves an owner's reminders in list order.
	ListReminders(ctx context.Context, ownerID string) ([]dto.ReminderResponse, error)
	// CompleteReminder deletes the reminder at a 1-based position of a freshly fetched list.
	CompleteReminder(ctx context.Context, req dto.CompleteReminderRequest) (dto.ReminderResponse, error)
}
