package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ListNameForStatus maps a task status to its kanban column name. Unknown
// statuses land in "Done", the catch-all of the board.
func ListNameForStatus(status string) string {
	switch status {
	case model.StatusPending:
		return "To Do"
	case model.StatusInProgress:
		return "Doing"
	default:
		return "Done"
	}
}

// TaskService handles task CRUD, status transitions and comments. Any status
// is reachable from any other; no transition is rejected.
type TaskService interface {
	ListByProject(ctx context.Context, projectID uint) ([]model.Task, error)
	Create(ctx context.Context, actorID, projectID uint, title, status, priority string) (*model.Task, error)
	Details(ctx context.Context, taskID uint) (*model.Task, error)
	UpdateDetails(ctx context.Context, actorID, taskID uint, title, description, priority string) error
	UpdateStatus(ctx context.Context, actorID, taskID uint, newStatus string) error
	Delete(ctx context.Context, taskID uint) error
	AddComment(ctx context.Context, actorID, taskID uint, text string) (*model.TaskComment, error)
	Comments(ctx context.Context, taskID uint) ([]model.TaskComment, error)
}

type taskService struct {
	taskRepo    repository.TaskRepository
	listRepo    repository.TaskListRepository
	commentRepo repository.TaskCommentRepository
	cache       *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	listRepo repository.TaskListRepository,
	commentRepo repository.TaskCommentRepository,
	cache *cache.Client,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		listRepo:    listRepo,
		commentRepo: commentRepo,
		cache:       cache,
	}
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	return s.taskRepo.ListByProject(ctx, projectID)
}

// Create inserts a task into the column matching its status, creating the
// column on first use. The task row and its CREATED history row are written
// in one transaction so a crash cannot leave an un-audited task.
func (s *taskService) Create(ctx context.Context, actorID, projectID uint, title, status, priority string) (*model.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.ErrMissingFields
	}
	if status == "" {
		status = model.StatusPending
	}
	if priority == "" {
		priority = "Medium"
	}

	list, err := s.listRepo.FindOrCreate(ctx, projectID, ListNameForStatus(status))
	if err != nil {
		return nil, fmt.Errorf("ensure list: %w", err)
	}

	task := &model.Task{
		ListID:     list.ID,
		Title:      title,
		Status:     status,
		Priority:   priority,
		AssignedTo: actorID,
	}

	err = s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		if err := repo.Create(ctx, task); err != nil {
			return fmt.Errorf("create task: %w", err)
		}
		return repo.AppendHistory(ctx, &model.TaskHistory{
			TaskID:     task.ID,
			ChangeType: model.ChangeCreated,
			ChangedBy:  actorID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, actorID)
	return task, nil
}

// Details loads a task with its comments and history.
func (s *taskService) Details(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindWithDetails(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("load task: %w", err)
	}
	return task, nil
}

// UpdateDetails edits title, description and priority, appending one UPDATED
// history row in the same transaction.
func (s *taskService) UpdateDetails(ctx context.Context, actorID, taskID uint, title, description, priority string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("load task: %w", err)
	}

	task.Title = title
	task.Description = description
	task.Priority = priority

	err = s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		if err := repo.Update(ctx, task); err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return repo.AppendHistory(ctx, &model.TaskHistory{
			TaskID:     taskID,
			ChangeType: model.ChangeUpdated,
			ChangedBy:  actorID,
		})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, actorID)
	return nil
}

// UpdateStatus moves a task between columns. The target column is created on
// first use; status field and list pointer move together, and one UPDATED
// history row records the transition.
func (s *taskService) UpdateStatus(ctx context.Context, actorID, taskID uint, newStatus string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("load task: %w", err)
	}

	list, err := s.ensureListForTask(ctx, task, newStatus)
	if err != nil {
		return err
	}

	task.Status = newStatus
	task.ListID = list.ID

	err = s.taskRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.TaskRepository) error {
		if err := repo.Update(ctx, task); err != nil {
			return fmt.Errorf("update task status: %w", err)
		}
		return repo.AppendHistory(ctx, &model.TaskHistory{
			TaskID:     taskID,
			ChangeType: model.ChangeUpdated,
			ChangedBy:  actorID,
		})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, actorID)
	return nil
}

// ensureListForTask resolves the project through the task's current list and
// finds or creates the column for the new status.
func (s *taskService) ensureListForTask(ctx context.Context, task *model.Task, newStatus string) (*model.TaskList, error) {
	currentList, err := s.listRepo.FindByID(ctx, task.ListID)
	if err != nil {
		return nil, fmt.Errorf("load current list: %w", err)
	}
	list, err := s.listRepo.FindOrCreate(ctx, currentList.ProjectID, ListNameForStatus(newStatus))
	if err != nil {
		return nil, fmt.Errorf("ensure list: %w", err)
	}
	return list, nil
}

// Delete removes the task. Deletions are not recorded in the history trail.
func (s *taskService) Delete(ctx context.Context, taskID uint) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}

// AddComment appends a comment to the task.
func (s *taskService) AddComment(ctx context.Context, actorID, taskID uint, text string) (*model.TaskComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrMissingFields
	}

	comment := &model.TaskComment{
		TaskID: taskID,
		UserID: actorID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

// Comments returns the task's comments newest first, with authors attached.
func (s *taskService) Comments(ctx context.Context, taskID uint) ([]model.TaskComment, error) {
	return s.commentRepo.ListByTask(ctx, taskID)
}

// invalidate drops cached views that a task mutation makes stale.
func (s *taskService) invalidate(ctx context.Context, actorID uint) {
	_ = s.cache.Delete(ctx, statsCacheKey, profileCacheKey(actorID))
}
