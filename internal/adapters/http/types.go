package http

import (
	"github.com/labstack/echo/v4"

	"github.com/tasklet/core/internal/domain/entities"
)

// ContextKeyUser is the echo context key holding the authenticated user
const ContextKeyUser = "user"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of message-only successes
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse wraps a user record; User is null for anonymous callers
type UserResponse struct {
	User *entities.User `json:"user"`
}

// TaskResponse wraps a single task
type TaskResponse struct {
	Task *entities.Task `json:"task"`
}

// TasksResponse wraps the caller's task list
type TasksResponse struct {
	Tasks []entities.Task `json:"tasks"`
}

// CurrentUser returns the user record attached by the auth gate, or
// nil when the route is unauthenticated.
func CurrentUser(c echo.Context) *entities.User {
	user, _ := c.Get(ContextKeyUser).(*entities.User)
	return user
}
