package model

import "time"

// Conventional task statuses. The column is free text, so any label is
// storable; these three are what the board renders.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task belongs to exactly one TaskList, which belongs to exactly one Project.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ListID      uint      `json:"list_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'Pending';index"`
	Priority    string    `json:"priority" gorm:"size:20;default:'Medium'"`
	AssignedTo  uint      `json:"assigned_to" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	List     TaskList      `json:"list,omitempty" gorm:"foreignKey:ListID"`
	Assignee User          `json:"-" gorm:"foreignKey:AssignedTo"`
	Comments []TaskComment `json:"comments,omitempty" gorm:"foreignKey:TaskID"`
	History  []TaskHistory `json:"history,omitempty" gorm:"foreignKey:TaskID"`
}
