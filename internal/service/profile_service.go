package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

const (
	activityPageSize = 4
	profileCacheTTL  = 2 * time.Minute
)

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

// ProfileStats summarizes a user's workload.
type ProfileStats struct {
	Projects       int64 `json:"projects"`
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	PendingTasks   int64 `json:"pending_tasks"`
	CompletionRate int64 `json:"completion_rate"`
}

// ActivityEntry is one row of the profile's recent-activity feed.
type ActivityEntry struct {
	ChangeType  string    `json:"change_type"`
	TaskTitle   string    `json:"task_title"`
	ProjectName string    `json:"project_name"`
	ChangeTime  time.Time `json:"change_time"`
}

// Pagination describes the activity feed paging state.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}

// Profile is the full profile-page payload.
type Profile struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	ProfileImage   string          `json:"profile_image,omitempty"`
	Stats          ProfileStats    `json:"stats"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
	Pagination     Pagination      `json:"pagination"`
}

// ProfileService handles the profile page, profile edits and image uploads.
type ProfileService interface {
	Get(ctx context.Context, userID uint, page int) (*Profile, error)
	Update(ctx context.Context, userID uint, name, password, confirmPassword string) error
	SaveImage(ctx context.Context, userID uint, filename string, data []byte) (string, error)
	DeleteImage(ctx context.Context, userID uint) error
}

type profileService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	historyRepo repository.TaskHistoryRepository
	uploads     *storage.Uploads
	cache       *cache.Client
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	historyRepo repository.TaskHistoryRepository,
	uploads *storage.Uploads,
	cache *cache.Client,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		historyRepo: historyRepo,
		uploads:     uploads,
		cache:       cache,
	}
}

// Get assembles the profile payload: user row, workload stats and a page of
// recent activity. Page 1 is served from cache when fresh.
func (s *profileService) Get(ctx context.Context, userID uint, page int) (*Profile, error) {
	if page < 1 {
		page = 1
	}

	if page == 1 {
		var cached Profile
		if s.cache.GetJSON(ctx, profileCacheKey(userID), &cached) {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	projects, err := s.projectRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	total, err := s.taskRepo.CountByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	completed, err := s.taskRepo.CountByAssigneeAndStatus(ctx, userID, model.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("count completed tasks: %w", err)
	}

	offset := (page - 1) * activityPageSize
	entries, err := s.historyRepo.ListByActorPaged(ctx, userID, activityPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	totalActivity, err := s.historyRepo.CountByActor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count activity: %w", err)
	}

	activity := make([]ActivityEntry, 0, len(entries))
	for _, e := range entries {
		activity = append(activity, ActivityEntry{
			ChangeType:  e.ChangeType,
			TaskTitle:   e.Task.Title,
			ProjectName: e.Task.List.Project.Name,
			ChangeTime:  e.ChangeTime,
		})
	}

	profile := &Profile{
		Name:         user.Name,
		Email:        user.Email,
		ProfileImage: user.ProfileImage,
		Stats: ProfileStats{
			Projects:       projects,
			TotalTasks:     total,
			CompletedTasks: completed,
			PendingTasks:   total - completed,
			CompletionRate: completionRate(completed, total),
		},
		RecentActivity: activity,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  int((totalActivity + activityPageSize - 1) / activityPageSize),
			HasMore:     int64(offset+activityPageSize) < totalActivity,
		},
	}

	if page == 1 {
		s.cache.SetJSON(ctx, profileCacheKey(userID), profile, profileCacheTTL)
	}
	return profile, nil
}

// completionRate is the completed share in whole percent, rounded half up.
func completionRate(completed, total int64) int64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(completed).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(0)
	return rate.IntPart()
}

// Update changes the display name and, when provided, the password.
func (s *profileService) Update(ctx context.Context, userID uint, name, password, confirmPassword string) error {
	if name == "" {
		return apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	user.Name = name
	if password != "" {
		if password != confirmPassword {
			return fmt.Errorf("%w: passwords do not match", apperrors.ErrMissingFields)
		}
		if len(password) < 6 {
			return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrMissingFields)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return nil
}

// SaveImage writes the uploaded image and records its public path on the
// user row. A replaced image's file is not removed from disk.
func (s *profileService) SaveImage(ctx context.Context, userID uint, filename string, data []byte) (string, error) {
	publicPath, err := s.uploads.Save(userID, filename, data)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	user.ProfileImage = publicPath
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("record image path: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return publicPath, nil
}

// DeleteImage clears the stored path. The file itself stays on disk.
func (s *profileService) DeleteImage(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	user.ProfileImage = ""
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("clear image path: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(userID))
	return nil
}
