package ports

import (
	"context"

	"github.com/tasklet/core/internal/domain/entities"
)

// UserRepository resolves user records from the flat-file collection
type UserRepository interface {
	// GetByEmail finds a user by email, case-insensitively
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetByID finds a user by id
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Create appends a new user; fails if the email is already taken
	Create(ctx context.Context, user *entities.User) error
}

// TaskRepository operates on a single user's embedded task list. Every
// mutation rewrites the whole user collection.
type TaskRepository interface {
	// ListByUser returns the user's task array, never nil
	ListByUser(ctx context.Context, userID string) ([]entities.Task, error)

	// Create appends the task to the user's list
	Create(ctx context.Context, userID string, task entities.Task) (*entities.Task, error)

	// Update locates the task and applies mutate to it in place,
	// persisting the result. Returns the updated task.
	Update(ctx context.Context, userID, taskID string, mutate func(*entities.Task) error) (*entities.Task, error)

	// Delete removes the task from the user's list
	Delete(ctx context.Context, userID, taskID string) error
}
