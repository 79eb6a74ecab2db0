package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Project, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByOwner(ctx context.Context, userID uint) (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner lists projects created by the user, newest first.
func (r *projectRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, id).Error
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error
	return count, err
}

func (r *projectRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("created_by = ?", userID).Count(&count).Error
	return count, err
}
