package model

import "time"

// TaskList is a kanban column within a project. Lists are created lazily:
// the first task entering a status column creates its list if absent.
type TaskList struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;index:idx_task_lists_project_name"`
	Name      string    `json:"name" gorm:"size:100;not null;index:idx_task_lists_project_name"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Project Project `json:"-" gorm:"foreignKey:ProjectID"`
	Tasks   []Task  `json:"tasks,omitempty" gorm:"foreignKey:ListID"`
}
