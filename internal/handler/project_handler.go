package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
	taskService    service.TaskService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService, taskService service.TaskService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, taskService: taskService}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description"`
}

// RenameProjectRequest represents a project rename request.
type RenameProjectRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

// List godoc
// @Summary List the caller's projects
// @Tags projects
// @Produce json
// @Success 200 {array} model.Project
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	projects, err := h.projectService.List(c.Request().Context(), identity.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// Create godoc
// @Summary Create a project with its default To Do list
// @Tags projects
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "Project data"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), identity.UserID, req.Name, req.Description)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

// Rename godoc
// @Summary Rename a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body RenameProjectRequest true "New name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Rename(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	var req RenameProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.projectService.Rename(c.Request().Context(), projectID, req.Name); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project renamed"})
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), projectID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "project deleted"})
}

// Tasks godoc
// @Summary List all tasks of a project for the board view
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) Tasks(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Lists godoc
// @Summary List the kanban columns of a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {array} model.TaskList
// @Failure 400 {object} errors.ErrorResponse
// @Router /projects/{id}/lists [get]
func (h *ProjectHandler) Lists(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return err
	}

	lists, err := h.projectService.Lists(c.Request().Context(), projectID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, lists)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
