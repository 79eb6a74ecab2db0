package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 1 * time.Minute
)

// Stats aggregates row counts for the admin panel.
type Stats struct {
	Users    int64 `json:"users"`
	Projects int64 `json:"projects"`
	Tasks    int64 `json:"tasks"`
}

// AdminService gates and serves the admin panel. Role membership is
// re-derived from the join table on every call; a failed check degrades to
// an empty or denied result instead of surfacing an error page.
type AdminService interface {
	IsAdmin(ctx context.Context, userID uint) bool
	Stats(ctx context.Context, actorID uint) (*Stats, error)
	ListUsers(ctx context.Context, actorID uint) ([]model.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uint) error
}

type adminService struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	cache       *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	cache *cache.Client,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		cache:       cache,
	}
}

// IsAdmin reports Admin role membership. Errors count as "not admin".
func (s *adminService) IsAdmin(ctx context.Context, userID uint) bool {
	has, err := s.roleRepo.UserHasRole(ctx, userID, model.RoleAdmin)
	if err != nil {
		return false
	}
	return has
}

// Stats returns aggregate counts, or nil for non-admins.
func (s *adminService) Stats(ctx context.Context, actorID uint) (*Stats, error) {
	if !s.IsAdmin(ctx, actorID) {
		return nil, nil
	}

	var stats Stats
	if s.cache.GetJSON(ctx, statsCacheKey, &stats) {
		return &stats, nil
	}

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	tasks, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	stats = Stats{Users: users, Projects: projects, Tasks: tasks}
	s.cache.SetJSON(ctx, statsCacheKey, &stats, statsCacheTTL)
	return &stats, nil
}

// ListUsers returns all users with their roles, or an empty slice for
// non-admins so the caller degrades to an empty view.
func (s *adminService) ListUsers(ctx context.Context, actorID uint) ([]model.User, error) {
	if !s.IsAdmin(ctx, actorID) {
		return []model.User{}, nil
	}
	return s.userRepo.ListWithRoles(ctx)
}

// DeleteUser removes a user. Users holding the Admin role are protected and
// stay intact.
func (s *adminService) DeleteUser(ctx context.Context, actorID, targetID uint) error {
	if !s.IsAdmin(ctx, actorID) {
		return apperrors.ErrUnauthorized
	}

	targetIsAdmin, err := s.roleRepo.UserHasRole(ctx, targetID, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check target role: %w", err)
	}
	if targetIsAdmin {
		return apperrors.ErrAdminProtected
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}
