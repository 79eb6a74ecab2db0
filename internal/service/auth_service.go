package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, isAdmin bool, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

// Register creates a user with a hashed password and grants the default
// User role. The Admin role is never granted here.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	role, err := s.roleRepo.FindOrCreateByName(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("ensure default role: %w", err)
	}
	if err := s.roleRepo.Grant(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("grant default role: %w", err)
	}

	// The new account must show up in the admin counts right away.
	_ = s.cache.Delete(ctx, statsCacheKey)
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same error so the response never reveals which
// side failed.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, bool, error) {
	if email == "" || password == "" {
		return "", nil, false, apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, false, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, false, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return "", nil, false, fmt.Errorf("generate session token: %w", err)
	}

	isAdmin := false
	for _, role := range user.Roles {
		if role.Name == model.RoleAdmin {
			isAdmin = true
			break
		}
	}

	return token, user, isAdmin, nil
}
