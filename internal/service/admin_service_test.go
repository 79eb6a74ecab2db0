package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func TestAdminService_DeleteUser(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockRoleRepository)
		expectedError error
	}{
		{
			name: "admin deletes regular user",
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mRole.On("UserHasRole", mock.Anything, uint(1), model.RoleAdmin).Return(true, nil)
				mRole.On("UserHasRole", mock.Anything, uint(5), model.RoleAdmin).Return(false, nil)
				mUser.On("Delete", mock.Anything, uint(5)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "admin-role target stays intact",
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mRole.On("UserHasRole", mock.Anything, uint(1), model.RoleAdmin).Return(true, nil)
				mRole.On("UserHasRole", mock.Anything, uint(5), model.RoleAdmin).Return(true, nil)
			},
			expectedError: apperrors.ErrAdminProtected,
		},
		{
			name: "non-admin actor denied",
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mRole.On("UserHasRole", mock.Anything, uint(1), model.RoleAdmin).Return(false, nil)
			},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRoleRepo := new(MockRoleRepository)
			tt.setupMock(mockUserRepo, mockRoleRepo)

			service := NewAdminService(mockUserRepo, mockRoleRepo, new(MockProjectRepository), new(MockTaskRepository), nil)

			err := service.DeleteUser(context.Background(), 1, 5)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				mockUserRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockRoleRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_ListUsers_DegradesForNonAdmin(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	mockRoleRepo.On("UserHasRole", mock.Anything, uint(9), model.RoleAdmin).Return(false, nil)

	service := NewAdminService(mockUserRepo, mockRoleRepo, new(MockProjectRepository), new(MockTaskRepository), nil)

	users, err := service.ListUsers(context.Background(), 9)
	assert.NoError(t, err)
	assert.Empty(t, users)
	mockUserRepo.AssertNotCalled(t, "ListWithRoles", mock.Anything)
}

func TestAdminService_Stats(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockTaskRepo := new(MockTaskRepository)

	mockRoleRepo.On("UserHasRole", mock.Anything, uint(1), model.RoleAdmin).Return(true, nil)
	mockUserRepo.On("Count", mock.Anything).Return(int64(3), nil)
	mockProjectRepo.On("Count", mock.Anything).Return(int64(5), nil)
	mockTaskRepo.On("Count", mock.Anything).Return(int64(11), nil)

	service := NewAdminService(mockUserRepo, mockRoleRepo, mockProjectRepo, mockTaskRepo, nil)

	stats, err := service.Stats(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, &Stats{Users: 3, Projects: 5, Tasks: 11}, stats)

	// Non-admin gets nil, not an error page.
	mockRoleRepo.On("UserHasRole", mock.Anything, uint(9), model.RoleAdmin).Return(false, nil)
	stats, err = service.Stats(context.Background(), 9)
	assert.NoError(t, err)
	assert.Nil(t, stats)
}
