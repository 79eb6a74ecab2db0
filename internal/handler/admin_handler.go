package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/service"
)

// AdminHandler handles admin panel endpoints. Role checks live in the
// service; a failed check degrades to an empty or denied result.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats godoc
// @Summary Aggregate user/project/task counts
// @Tags admin
// @Produce json
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	stats, err := h.adminService.Stats(c.Request().Context(), identity.UserID)
	if err != nil {
		return domainError(err)
	}
	if stats == nil {
		return domainError(apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary List all users with roles; empty for non-admins
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	users, err := h.adminService.ListUsers(c.Request().Context(), identity.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a non-admin user
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), identity.UserID, targetID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
