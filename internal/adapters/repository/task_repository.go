package repository

import (
	"context"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/store"
)

// TaskRepository operates on one user's embedded task list. Every
// mutation is a locate-mutate-persist cycle over the whole collection,
// serialized by the store's locks.
type TaskRepository struct {
	store *store.Store
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(s *store.Store) *TaskRepository {
	return &TaskRepository{store: s}
}

// ListByUser returns the user's task array verbatim, never nil
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]entities.Task, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == userID {
			if users[i].Tasks == nil {
				return []entities.Task{}, nil
			}
			return users[i].Tasks, nil
		}
	}

	return nil, entities.ErrUserNotFound
}

// Create appends the task to the user's list
func (r *TaskRepository) Create(ctx context.Context, userID string, task entities.Task) (*entities.Task, error) {
	err := r.store.Update(ctx, func(users []entities.User) ([]entities.User, error) {
		ui := indexOfUser(users, userID)
		if ui < 0 {
			return nil, entities.ErrUserNotFound
		}
		users[ui].Tasks = append(users[ui].Tasks, task)
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update locates the task, applies mutate in place and persists the
// whole collection. Returns the updated task.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID string, mutate func(*entities.Task) error) (*entities.Task, error) {
	var updated entities.Task

	err := r.store.Update(ctx, func(users []entities.User) ([]entities.User, error) {
		ui := indexOfUser(users, userID)
		if ui < 0 {
			return nil, entities.ErrUserNotFound
		}

		ti := indexOfTask(users[ui].Tasks, taskID)
		if ti < 0 {
			return nil, entities.ErrTaskNotFound
		}

		if err := mutate(&users[ui].Tasks[ti]); err != nil {
			return nil, err
		}

		// id is server-owned and survives any merge
		users[ui].Tasks[ti].ID = taskID
		updated = users[ui].Tasks[ti]
		return users, nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes the task from the user's list
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	return r.store.Update(ctx, func(users []entities.User) ([]entities.User, error) {
		ui := indexOfUser(users, userID)
		if ui < 0 {
			return nil, entities.ErrUserNotFound
		}

		ti := indexOfTask(users[ui].Tasks, taskID)
		if ti < 0 {
			return nil, entities.ErrTaskNotFound
		}

		users[ui].Tasks = append(users[ui].Tasks[:ti], users[ui].Tasks[ti+1:]...)
		return users, nil
	})
}

func indexOfUser(users []entities.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func indexOfTask(tasks []entities.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
