package model

import "time"

// User represents a registered account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfileImage string    `json:"profile_image,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Roles    []Role    `json:"roles,omitempty" gorm:"many2many:user_roles"`
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:CreatedBy"`
}
