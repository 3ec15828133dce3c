package dto

import (
	"remindme/internal/domain/constant"
	"remindme/internal/domain/entity"
)

// ReminderResponse is the DTO for sending reminder information to the client (e.g., listing reminders).
type ReminderResponse struct {
	ID        string                  `json:"id"`
	Text      string                  `json:"text"`
	TimeOfDay string                  `json:"time_of_day"`
	Repeat    constant.RepeatInterval `json:"repeat_hours"`
}

// ToReminderResponse converts an entity.Reminder to a ReminderResponse DTO.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:        r.ID,
		Text:      r.Text,
		TimeOfDay: r.TimeOfDay,
		Repeat:    r.RepeatHours,
	}
}

// ToReminderResponseList converts a slice of entity.Reminder to a slice of ReminderResponse DTOs.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}

// CreateReminderRequest is the DTO for creating a new reminder.
type CreateReminderRequest struct {
	OwnerID     string `json:"owner_id"`
	Text        string `json:"text"`
	Time        string `json:"time"`                   // "HH:MM" as typed by the user
	RepeatToken string `json:"repeat_token,omitempty"` // "1h".."10h", empty for one-shot
}

// CompleteReminderRequest is the DTO for completing a reminder by its list position.
type CompleteReminderRequest struct {
	OwnerID string `json:"owner_id"`
	Index   int    `json:"index"` // 1-based, as shown by the list command
}
