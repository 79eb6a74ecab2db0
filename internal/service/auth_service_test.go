package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockRoleRepository)
		expectedError error
	}{
		{
			name:     "successful registration grants default role",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mRole.On("FindOrCreateByName", mock.Anything, model.RoleUser).Return(&model.Role{ID: 2, Name: model.RoleUser}, nil)
				mRole.On("Grant", mock.Anything, mock.AnythingOfType("uint"), uint(2)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate email creates no row",
			userName: "Existing User",
			email:    "existing@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mRole *MockRoleRepository) {
				mUser.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
		{
			name:          "missing fields",
			userName:      "",
			email:         "test@example.com",
			password:      "password123",
			setupMock:     func(mUser *MockUserRepository, mRole *MockRoleRepository) {},
			expectedError: apperrors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockRoleRepo := new(MockRoleRepository)
			tt.setupMock(mockUserRepo, mockRoleRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockRoleRepo, jwtService, nil)

			user, err := service.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockUserRepo.AssertExpectations(t)
			mockRoleRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_InvalidatesAdminStats(t *testing.T) {
	mr := miniredis.RunT(t)
	cacheClient := cache.New(mr.Addr(), "", 0)
	assert.NoError(t, mr.Set(statsCacheKey, `{"users":1,"projects":0,"tasks":0}`))

	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	mockUserRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockRoleRepo.On("FindOrCreateByName", mock.Anything, model.RoleUser).Return(&model.Role{ID: 2, Name: model.RoleUser}, nil)
	mockRoleRepo.On("Grant", mock.Anything, mock.AnythingOfType("uint"), uint(2)).Return(nil)

	service := NewAuthService(mockUserRepo, mockRoleRepo, auth.NewJWTService("test-secret"), cacheClient)

	_, err := service.Register(context.Background(), "New User", "new@example.com", "password123")
	assert.NoError(t, err)

	// The cached admin counts are stale the moment the user row exists.
	assert.False(t, mr.Exists(statsCacheKey))
	mockUserRepo.AssertExpectations(t)
	mockRoleRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectAdmin   bool
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           7,
					Name:         "Test User",
					Email:        "test@example.com",
					PasswordHash: string(hashed),
					Roles:        []model.Role{{ID: 2, Name: model.RoleUser}},
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "admin login reports admin",
			email:    "admin@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
					ID:           1,
					Email:        "admin@example.com",
					PasswordHash: string(hashed),
					Roles:        []model.Role{{ID: 2, Name: model.RoleUser}, {ID: 1, Name: model.RoleAdmin}},
				}, nil)
			},
			expectAdmin:   true,
			expectedError: nil,
		},
		{
			name:     "wrong password issues no token",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			tt.setupMock(mockUserRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, new(MockRoleRepository), jwtService, nil)

			token, user, isAdmin, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectAdmin, isAdmin)

				// The token decodes back to the identity it was issued for.
				claims, err := jwtService.Verify(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Email, claims.Email)
			}

			mockUserRepo.AssertExpectations(t)
		})
	}
}
