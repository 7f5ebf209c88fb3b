package ports

import (
	"context"

	"github.com/tasklet/core/internal/domain/entities"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Icon  string `json:"icon"`
}

// SubTaskPayload is a client-supplied subtask inside an update. Every
// field is optional; missing ids are generated and completed accepts
// any JSON value (coerced by truthiness).
type SubTaskPayload struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Completed   entities.Truthy `json:"completed"`
}

// UpdateTaskRequest is the partial body of PUT /api/tasks/:id. Nil
// fields are left untouched; a present subTasks array is normalized
// and triggers a percentage recompute.
type UpdateTaskRequest struct {
	Title    *string           `json:"title"`
	Date     *string           `json:"date"`
	Time     *string           `json:"time"`
	Icon     *string           `json:"icon"`
	SubTasks *[]SubTaskPayload `json:"subTasks"`
}

// AuthService authenticates users and resolves session tokens
type AuthService interface {
	// Login verifies credentials and issues a session token
	Login(ctx context.Context, req LoginRequest) (*entities.User, string, error)

	// CheckSession resolves a session token to its user record
	CheckSession(ctx context.Context, token string) (*entities.User, error)
}

// TaskService implements the task operations for one authenticated user
type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]entities.Task, error)
	CreateTask(ctx context.Context, userID string, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}
