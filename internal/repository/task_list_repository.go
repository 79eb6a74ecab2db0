package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskListRepository defines kanban column persistence operations.
type TaskListRepository interface {
	Create(ctx context.Context, list *model.TaskList) error
	FindByID(ctx context.Context, id uint) (*model.TaskList, error)
	FindByProjectAndName(ctx context.Context, projectID uint, name string) (*model.TaskList, error)
	FindOrCreate(ctx context.Context, projectID uint, name string) (*model.TaskList, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.TaskList, error)
}

type taskListRepository struct {
	db *gorm.DB
}

// NewTaskListRepository creates a new task list repository.
func NewTaskListRepository(db *gorm.DB) TaskListRepository {
	return &taskListRepository{db: db}
}

func (r *taskListRepository) Create(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *taskListRepository) FindByID(ctx context.Context, id uint) (*model.TaskList, error) {
	var list model.TaskList
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *taskListRepository) FindByProjectAndName(ctx context.Context, projectID uint, name string) (*model.TaskList, error) {
	var list model.TaskList
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", projectID, name).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindOrCreate returns the named column of a project, creating it on first
// use. A second task entering the same column reuses the existing list.
func (r *taskListRepository) FindOrCreate(ctx context.Context, projectID uint, name string) (*model.TaskList, error) {
	list, err := r.FindByProjectAndName(ctx, projectID, name)
	if err == nil {
		return list, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := model.TaskList{ProjectID: projectID, Name: name}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *taskListRepository) ListByProject(ctx context.Context, projectID uint) ([]model.TaskList, error) {
	var lists []model.TaskList
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).
		Order("id").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}
