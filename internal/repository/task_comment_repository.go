package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskCommentRepository defines comment persistence operations.
// Comments are append-only; there is no update or delete.
type TaskCommentRepository interface {
	Create(ctx context.Context, comment *model.TaskComment) error
	ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error)
}

type taskCommentRepository struct {
	db *gorm.DB
}

// NewTaskCommentRepository creates a new task comment repository.
func NewTaskCommentRepository(db *gorm.DB) TaskCommentRepository {
	return &taskCommentRepository{db: db}
}

func (r *taskCommentRepository) Create(ctx context.Context, comment *model.TaskComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *taskCommentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error) {
	var comments []model.TaskComment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
