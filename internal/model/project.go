package model

import "time"

// Project is the top-level grouping of kanban lists and tasks.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner User       `json:"-" gorm:"foreignKey:CreatedBy"`
	Lists []TaskList `json:"lists,omitempty" gorm:"foreignKey:ProjectID"`
}
