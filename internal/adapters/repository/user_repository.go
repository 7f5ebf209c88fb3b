package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/store"
)

// UserRepository resolves user records from the flat-file store
type UserRepository struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// GetByEmail finds a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}

	return nil, entities.ErrUserNotFound
}

// GetByID finds a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}

	return nil, entities.ErrUserNotFound
}

// Create appends a new user to the collection. The email must not be
// in use yet.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return r.store.Update(ctx, func(users []entities.User) ([]entities.User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, user.Email) {
				return nil, fmt.Errorf("user with email %s already exists", user.Email)
			}
		}
		if user.Tasks == nil {
			user.Tasks = []entities.Task{}
		}
		return append(users, *user), nil
	})
}
