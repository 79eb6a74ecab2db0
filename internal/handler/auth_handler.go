package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	User     interface{} `json:"user"`
	Redirect string      `json:"redirect"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, isAdmin, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// no cookie is set on a failed login
		return domainError(err)
	}

	auth.SetSessionCookie(c, token, h.cfg.IsProduction())

	redirect := "/dashboard"
	if isAdmin {
		redirect = "/admin"
	}
	return c.JSON(http.StatusOK, LoginResponse{User: user, Redirect: redirect})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth.ClearSessionCookie(c, h.cfg.IsProduction())
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "logged out",
		"redirect": "/auth/login",
	})
}

// domainError maps a service error onto an echo HTTP error with the
// standard ErrorResponse body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
