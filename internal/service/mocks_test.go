package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListWithRoles(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindOrCreateByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) Grant(ctx context.Context, userID, roleID uint) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) UserHasRole(ctx context.Context, userID uint, roleName string) (bool, error) {
	args := m.Called(ctx, userID, roleName)
	return args.Bool(0), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository.
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) CountByOwner(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskListRepository is a mock implementation of TaskListRepository.
type MockTaskListRepository struct {
	mock.Mock
}

func (m *MockTaskListRepository) Create(ctx context.Context, list *model.TaskList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockTaskListRepository) FindByID(ctx context.Context, id uint) (*model.TaskList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskList), args.Error(1)
}

func (m *MockTaskListRepository) FindByProjectAndName(ctx context.Context, projectID uint, name string) (*model.TaskList, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskList), args.Error(1)
}

func (m *MockTaskListRepository) FindOrCreate(ctx context.Context, projectID uint, name string) (*model.TaskList, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskList), args.Error(1)
}

func (m *MockTaskListRepository) ListByProject(ctx context.Context, projectID uint) ([]model.TaskList, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskList), args.Error(1)
}

// MockTaskRepository is a mock implementation of TaskRepository. Its
// WithTransaction runs the callback against the mock itself so expectations
// on the inner writes still fire.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindWithDetails(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) AppendHistory(ctx context.Context, entry *model.TaskHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTaskRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByAssignee(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountByAssigneeAndStatus(ctx context.Context, userID uint, status string) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.TaskRepository) error) error {
	return fn(ctx, m)
}

// MockTaskHistoryRepository is a mock implementation of TaskHistoryRepository.
type MockTaskHistoryRepository struct {
	mock.Mock
}

func (m *MockTaskHistoryRepository) ListByActorPaged(ctx context.Context, userID uint, limit, offset int) ([]model.TaskHistory, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskHistory), args.Error(1)
}

func (m *MockTaskHistoryRepository) CountByActor(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaskCommentRepository is a mock implementation of TaskCommentRepository.
type MockTaskCommentRepository struct {
	mock.Mock
}

func (m *MockTaskCommentRepository) Create(ctx context.Context, comment *model.TaskComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockTaskCommentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskComment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}
