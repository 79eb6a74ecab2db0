package model

import "time"

// Change types recorded in the task audit trail. Deletions are not logged.
const (
	ChangeCreated = "CREATED"
	ChangeUpdated = "UPDATED"
)

// TaskHistory is an append-only audit record of a task change.
// Rows are never mutated or deleted.
type TaskHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	TaskID     uint      `json:"task_id" gorm:"not null;index"`
	ChangeType string    `json:"change_type" gorm:"size:20;not null"`
	ChangedBy  uint      `json:"changed_by" gorm:"not null;index"`
	ChangeTime time.Time `json:"change_time" gorm:"autoCreateTime;index"`

	// Relations
	Task  Task `json:"-" gorm:"foreignKey:TaskID"`
	Actor User `json:"-" gorm:"foreignKey:ChangedBy"`
}
