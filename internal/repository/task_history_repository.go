package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

// TaskHistoryRepository defines read access to the append-only audit trail.
// Writes go through TaskRepository so they share the mutation's transaction.
type TaskHistoryRepository interface {
	ListByActorPaged(ctx context.Context, userID uint, limit, offset int) ([]model.TaskHistory, error)
	CountByActor(ctx context.Context, userID uint) (int64, error)
}

type taskHistoryRepository struct {
	db *gorm.DB
}

// NewTaskHistoryRepository creates a new task history repository.
func NewTaskHistoryRepository(db *gorm.DB) TaskHistoryRepository {
	return &taskHistoryRepository{db: db}
}

// ListByActorPaged returns a page of the user's activity, newest first, with
// the task and its project preloaded for display.
func (r *taskHistoryRepository) ListByActorPaged(ctx context.Context, userID uint, limit, offset int) ([]model.TaskHistory, error) {
	var entries []model.TaskHistory
	err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("Task.List.Project").
		Where("changed_by = ?", userID).
		Order("change_time DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *taskHistoryRepository) CountByActor(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskHistory{}).
		Where("changed_by = ?", userID).Count(&count).Error
	return count, err
}
