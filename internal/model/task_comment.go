package model

import "time"

// TaskComment is an append-only comment attached to a task.
type TaskComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task   Task `json:"-" gorm:"foreignKey:TaskID"`
	Author User `json:"-" gorm:"foreignKey:UserID"`
}
