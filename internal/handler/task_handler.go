package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/todolist/internal/domain"
	"github.com/locvowork/todolist/internal/service"
	"github.com/locvowork/todolist/internal/service/serviceutils"
	"github.com/locvowork/todolist/internal/session"
)

// TaskHandler serves the task routes. Every route is mounted behind
// session.RequireAuth, so the session user id is always present here.
type TaskHandler struct {
	tasks        service.TaskService
	exportLayout string
}

func NewTaskHandler(tasks service.TaskService, exportLayout string) *TaskHandler {
	if exportLayout == "" {
		exportLayout = DefaultExportLayout
	}
	return &TaskHandler{tasks: tasks, exportLayout: exportLayout}
}

type submitRequest struct {
	Task     string          `json:"task"`
	Priority domain.Priority `json:"priority"`
}

type idRequest struct {
	ID string `json:"id"`
}

type updateRequest struct {
	ID       string          `json:"id"`
	Priority domain.Priority `json:"priority"`
}

// ListHandler handles GET /tasks
func (h *TaskHandler) ListHandler(c echo.Context) error {
	tasks, err := h.tasks.List(c.Request().Context(), session.UserID(c))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error loading tasks.", err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// SubmitHandler handles POST /submit
func (h *TaskHandler) SubmitHandler(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Invalid request body.")
	}

	if _, err := h.tasks.Create(c.Request().Context(), session.UserID(c), req.Task, req.Priority); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error adding task.", err)
	}
	return serviceutils.ResponseMessage(c, http.StatusOK, "Task added successfully.")
}

// DeleteHandler handles POST /delete. Ids that are missing or belong to
// someone else are accepted without effect.
func (h *TaskHandler) DeleteHandler(c echo.Context) error {
	var req idRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Invalid request body.")
	}

	if err := h.tasks.Delete(c.Request().Context(), session.UserID(c), req.ID); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error deleting task.", err)
	}
	return serviceutils.ResponseMessage(c, http.StatusOK, "Task deleted successfully.")
}

// UpdateHandler handles POST /update
func (h *TaskHandler) UpdateHandler(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseMessage(c, http.StatusBadRequest, "Invalid request body.")
	}

	_, err := h.tasks.UpdatePriority(c.Request().Context(), session.UserID(c), req.ID, req.Priority)
	if errors.Is(err, domain.ErrNotFound) {
		return serviceutils.ResponseMessage(c, http.StatusNotFound, "Task not found/insufficient permissions.")
	}
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Error updating task.", err)
	}
	return serviceutils.ResponseMessage(c, http.StatusOK, "Task updated successfully.")
}
