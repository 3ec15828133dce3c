package entity

import (
	"time"

	"remindme/internal/domain/constant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is a daily reminder firing at TimeOfDay in the bot's fixed zone.
type Reminder struct {
	ID          string                  `gorm:"column:id;type:char(36);primaryKey"`
	OwnerID     string                  `gorm:"column:owner_id;index;not null"`
	Text        string                  `gorm:"column:text;type:text;not null"`
	TimeOfDay   string                  `gorm:"column:time_of_day;type:char(5);index;not null"` // "HH:MM", rewritten when a repeating reminder fires
	RepeatHours constant.RepeatInterval `gorm:"column:repeat_hours;not null;default:0"`         // 0 for one-shot reminders
	CreatedAt   time.Time               `gorm:"column:created_at"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}

// BeforeCreate assigns the opaque id.
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// IsRepeating reports whether the reminder survives its delivery.
func (r *Reminder) IsRepeating() bool {
	return r.RepeatHours.IsSet()
}
