package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/service"
)

// TaskHandler handles task and comment endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	ProjectID uint   `json:"project_id" form:"project_id" validate:"required"`
	Title     string `json:"title" form:"title" validate:"required"`
	Status    string `json:"status" form:"status"`
	Priority  string `json:"priority" form:"priority"`
}

// UpdateTaskRequest represents a task detail edit.
type UpdateTaskRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description"`
	Priority    string `json:"priority" form:"priority"`
}

// UpdateStatusRequest represents a kanban column move.
type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

// AddCommentRequest represents a new task comment.
type AddCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

// Create godoc
// @Summary Create a task in the column matching its status
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), identity.UserID, req.ProjectID, req.Title, req.Status, req.Priority)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Details godoc
// @Summary Get a task with comments and history
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Details(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Details(c.Request().Context(), taskID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Edit task title, description and priority
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Task details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.taskService.UpdateDetails(c.Request().Context(), identity.UserID, taskID, req.Title, req.Description, req.Priority); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task updated"})
}

// UpdateStatus godoc
// @Summary Move a task to another kanban column
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.taskService.UpdateStatus(c.Request().Context(), identity.UserID, taskID, req.Status); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task moved"})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), taskID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}

// AddComment godoc
// @Summary Append a comment to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body AddCommentRequest true "Comment text"
// @Success 201 {object} model.TaskComment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c echo.Context) error {
	identity, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	var req AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.taskService.AddComment(c.Request().Context(), identity.UserID, taskID, req.Text)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Comments godoc
// @Summary List the comments on a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {array} model.TaskComment
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks/{id}/comments [get]
func (h *TaskHandler) Comments(c echo.Context) error {
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	comments, err := h.taskService.Comments(c.Request().Context(), taskID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, comments)
}
