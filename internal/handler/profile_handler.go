package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/service"
)

// ProfileHandler handles the profile page and image upload endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents a profile edit.
type UpdateProfileRequest struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// Get godoc
// @Summary Get the caller's profile with stats and recent activity
// @Tags profile
// @Produce json
// @Param page query int false "Activity page" default(1)
// @Success 200 {object} service.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	profile, err := h.profileService.Get(c.Request().Context(), identity.UserID, page)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update display name and optionally the password
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.profileService.Update(c.Request().Context(), identity.UserID, req.Name, req.Password, req.ConfirmPassword); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "profile updated"})
}

// UploadImage godoc
// @Summary Upload a profile image
// @Tags profile
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/image [post]
func (h *ProfileHandler) UploadImage(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}

	path, err := h.profileService.SaveImage(c.Request().Context(), identity.UserID, fileHeader.Filename, data)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"image_path": path})
}

// DeleteImage godoc
// @Summary Remove the profile image reference
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/image [delete]
func (h *ProfileHandler) DeleteImage(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	if err := h.profileService.DeleteImage(c.Request().Context(), identity.UserID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "profile image removed"})
}
