package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/ports"
)

// TaskHandler handles the authenticated task CRUD routes
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(c echo.Context) error {
	user := CurrentUser(c)

	tasks, err := h.taskService.ListTasks(c.Request().Context(), user.ID)
	if err != nil {
		h.logger.Error("List tasks failed", "error", err, "user_id", user.ID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load tasks"})
	}

	return c.JSON(http.StatusOK, TasksResponse{Tasks: tasks})
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user := CurrentUser(c)

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, entities.ErrTitleRequired) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title is required"})
		}
		h.logger.Error("Create task failed", "error", err, "user_id", user.ID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create task"})
	}

	return c.JSON(http.StatusCreated, TaskResponse{Task: task})
}

// UpdateTask handles PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user := CurrentUser(c)
	taskID := c.Param("id")

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), user.ID, taskID, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
		}
		h.logger.Error("Update task failed", "error", err, "user_id", user.ID, "task_id", taskID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update task"})
	}

	return c.JSON(http.StatusOK, TaskResponse{Task: task})
}

// DeleteTask handles DELETE /api/tasks/:id. Deleting an already-deleted
// id yields the same NotFound, every time.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user := CurrentUser(c)
	taskID := c.Param("id")

	if err := h.taskService.DeleteTask(c.Request().Context(), user.ID, taskID); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
		}
		h.logger.Error("Delete task failed", "error", err, "user_id", user.ID, "task_id", taskID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete task"})
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
