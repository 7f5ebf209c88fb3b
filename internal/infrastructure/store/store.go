// Package store persists the full user collection as a single JSON
// array on disk. Every mutation is a whole-file read-parse-mutate-write
// cycle; a process mutex plus a flock sidecar lock serialize those
// cycles so concurrent writers cannot clobber each other.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/tasklet/core/internal/domain/entities"
)

const lockRetryInterval = 100 * time.Millisecond

// Store is a flat-file collection of user records
type Store struct {
	path        string
	fileLock    *flock.Flock
	lockTimeout time.Duration
	mu          sync.Mutex
}

// New creates a store backed by the JSON file at path. The file does
// not need to exist yet.
func New(path string, lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Store{
		path:        path,
		fileLock:    flock.New(path + ".lock"),
		lockTimeout: lockTimeout,
	}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns all user records. A missing or empty file yields an
// empty collection, not an error.
func (s *Store) Load(ctx context.Context) ([]entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.loadLocked()
}

// Update runs fn inside the store's write lock. fn receives the current
// collection and returns the collection to persist; returning an error
// aborts the cycle without writing.
func (s *Store) Update(ctx context.Context, fn func(users []entities.User) ([]entities.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.acquireFileLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	users, err := s.loadLocked()
	if err != nil {
		return err
	}

	updated, err := fn(users)
	if err != nil {
		return err
	}

	return s.saveLocked(updated)
}

// Save replaces the whole collection on disk
func (s *Store) Save(ctx context.Context, users []entities.User) error {
	return s.Update(ctx, func([]entities.User) ([]entities.User, error) {
		return users, nil
	})
}

func (s *Store) acquireFileLock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.fileLock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire store lock on %s", s.path)
	}
	return func() { _ = s.fileLock.Unlock() }, nil
}

func (s *Store) loadLocked() ([]entities.User, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return []entities.User{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if len(data) == 0 {
		return []entities.User{}, nil
	}

	var users []entities.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}

	return users, nil
}

func (s *Store) saveLocked(users []entities.User) error {
	if users == nil {
		users = []entities.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	return nil
}
