package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// RoleRepository defines role and role-grant persistence operations.
type RoleRepository interface {
	FindOrCreateByName(ctx context.Context, name string) (*model.Role, error)
	Grant(ctx context.Context, userID, roleID uint) error
	UserHasRole(ctx context.Context, userID uint, roleName string) (bool, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// FindOrCreateByName finds a role by name or creates it on first use.
func (r *roleRepository) FindOrCreateByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	role = model.Role{Name: name}
	if err := r.db.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Grant attaches a role to a user. Granting twice is a no-op.
func (r *roleRepository) Grant(ctx context.Context, userID, roleID uint) error {
	grant := model.UserRole{UserID: userID, RoleID: roleID}
	err := r.db.WithContext(ctx).Create(&grant).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// UserHasRole reports whether the user holds the named role. Re-derived on
// every call; membership is never cached.
func (r *roleRepository) UserHasRole(ctx context.Context, userID uint, roleName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.name = ?", userID, roleName).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
