package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskRepository defines task persistence operations. History appends ride
// the same repository so a mutation and its audit row can share one
// transaction.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	FindWithDetails(ctx context.Context, id uint) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Delete(ctx context.Context, id uint) error
	AppendHistory(ctx context.Context, entry *model.TaskHistory) error
	Count(ctx context.Context) (int64, error)
	CountByAssignee(ctx context.Context, userID uint) (int64, error)
	CountByAssigneeAndStatus(ctx context.Context, userID uint, status string) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindWithDetails loads a task with its comments and history, newest first,
// including author and actor rows for display names.
func (r *taskRepository) FindWithDetails(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("change_time DESC")
		}).
		Preload("History.Actor").
		Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists tasks across all lists of a project, newest first.
func (r *taskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Joins("JOIN task_lists ON task_lists.id = tasks.list_id").
		Where("task_lists.project_id = ?", projectID).
		Preload("List").
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

func (r *taskRepository) AppendHistory(ctx context.Context, entry *model.TaskHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *taskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByAssignee(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ?", userID).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByAssigneeAndStatus(ctx context.Context, userID uint, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("assigned_to = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *taskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &taskRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
