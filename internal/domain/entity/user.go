package entity

import "time"

// User is a chat owner that has talked to the bot.
type User struct {
	ID        string    `gorm:"column:user_id;primaryKey"` // LINE user id or Telegram chat id
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}
