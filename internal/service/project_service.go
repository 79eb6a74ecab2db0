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

// ProjectService handles project CRUD.
type ProjectService interface {
	List(ctx context.Context, userID uint) ([]model.Project, error)
	Create(ctx context.Context, userID uint, name, description string) (*model.Project, error)
	Rename(ctx context.Context, projectID uint, newName string) error
	Delete(ctx context.Context, projectID uint) error
	Lists(ctx context.Context, projectID uint) ([]model.TaskList, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	listRepo    repository.TaskListRepository
	cache       *cache.Client
}

// NewProjectService creates a new project service.
func NewProjectService(projectRepo repository.ProjectRepository, listRepo repository.TaskListRepository, cache *cache.Client) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		listRepo:    listRepo,
		cache:       cache,
	}
}

// List returns the projects created by the user, newest first.
func (s *projectService) List(ctx context.Context, userID uint) ([]model.Project, error) {
	return s.projectRepo.ListByOwner(ctx, userID)
}

// Create stores a project and its default "To Do" column.
func (s *projectService) Create(ctx context.Context, userID uint, name, description string) (*model.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrMissingFields
	}

	project := &model.Project{
		Name:        name,
		Description: description,
		CreatedBy:   userID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := s.listRepo.Create(ctx, &model.TaskList{ProjectID: project.ID, Name: "To Do"}); err != nil {
		return nil, fmt.Errorf("create default list: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return project, nil
}

// Rename updates the project name. The acting user is only checked for a
// session, not for ownership of the row.
func (s *projectService) Rename(ctx context.Context, projectID uint, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.ErrMissingFields
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("load project: %w", err)
	}

	project.Name = newName
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("rename project: %w", err)
	}
	return nil
}

// Lists returns the project's kanban columns in creation order. Columns
// exist only once a task has entered them, plus the default "To Do".
func (s *projectService) Lists(ctx context.Context, projectID uint) ([]model.TaskList, error) {
	return s.listRepo.ListByProject(ctx, projectID)
}

// Delete removes the project row. Cascading of lists and tasks is left to
// the schema's foreign key defaults.
func (s *projectService) Delete(ctx context.Context, projectID uint) error {
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}
