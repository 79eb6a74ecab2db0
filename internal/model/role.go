package model

const (
	// RoleAdmin gates the admin panel; never granted automatically.
	RoleAdmin = "Admin"
	// RoleUser is granted to every account at registration.
	RoleUser = "User"
)

// Role is a named permission grant.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}

// UserRole joins users to roles.
type UserRole struct {
	UserID uint `json:"user_id" gorm:"primaryKey"`
	RoleID uint `json:"role_id" gorm:"primaryKey"`
}
