package sqlite

import (
	"context"
	"fmt"

	"remindme/internal/domain/entity"
	"remindme/internal/domain/repository"
	appErrors "remindme/internal/pkg/errors"

	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// Create creates a new reminder. Returns the ID of the created reminder.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) (string, error) {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return "", fmt.Errorf("%w: failed to create reminder for owner %s: %v", appErrors.ErrDatabaseOperation, reminder.OwnerID, err)
	}
	return reminder.ID, nil
}

// FindByOwnerID retrieves all reminders for a specific owner, oldest first.
func (r *reminderRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("rowid asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to find reminders by owner_id %s: %v", appErrors.ErrDatabaseOperation, ownerID, err)
	}
	return reminders, nil
}

// FindDueAt retrieves the reminders of every owner set to fire at timeOfDay.
func (r *reminderRepository) FindDueAt(ctx context.Context, timeOfDay string) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).Where("time_of_day = ?", timeOfDay).Order("rowid asc").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to find reminders due at %s: %v", appErrors.ErrDatabaseOperation, timeOfDay, err)
	}
	return reminders, nil
}

// UpdateTimeOfDay moves a reminder to a new time of day.
func (r *reminderRepository) UpdateTimeOfDay(ctx context.Context, id string, timeOfDay string) error {
	res := r.db.WithContext(ctx).Model(&entity.Reminder{}).Where("id = ?", id).Update("time_of_day", timeOfDay)
	if res.Error != nil {
		return fmt.Errorf("%w: failed to update reminder %s: %v", appErrors.ErrDatabaseOperation, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", appErrors.ErrReminderNotFound, id)
	}
	return nil
}

// Delete deletes a reminder by its ID.
func (r *reminderRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Reminder{}).Error; err != nil {
		return fmt.Errorf("%w: failed to delete reminder %s: %v", appErrors.ErrDatabaseOperation, id, err)
	}
	return nil
}

// DeleteByOwnerID deletes all reminders for a specific owner.
func (r *reminderRepository) DeleteByOwnerID(ctx context.Context, ownerID string) error {
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&entity.Reminder{}).Error; err != nil {
		return fmt.Errorf("%w: failed to delete reminders for owner %s: %v", appErrors.ErrDatabaseOperation, ownerID, err)
	}
	return nil
}
