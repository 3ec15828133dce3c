package repository

import (
	"context"

	"remindme/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder data operations.
// Each operation is atomic for a single record.
type ReminderRepository interface {
	// Create stores a new reminder and returns its id.
	Create(ctx context.Context, reminder *entity.Reminder) (string, error)
	// FindByOwnerID retrieves an owner's reminders in insertion order.
	FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reminder, error)
	// FindDueAt retrieves every reminder, across owners, whose time of day equals timeOfDay.
	FindDueAt(ctx context.Context, timeOfDay string) ([]*entity.Reminder, error)
	// UpdateTimeOfDay rewrites the time of day. Returns ErrReminderNotFound if the id is gone.
	UpdateTimeOfDay(ctx context.Context, id string, timeOfDay string) error
	// Delete removes a reminder by id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
	// DeleteByOwnerID removes all reminders of an owner.
	DeleteByOwnerID(ctx context.Context, ownerID string) error
}
