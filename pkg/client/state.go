package client

import (
	"sync"

	"github.com/tasklet/core/internal/domain/entities"
)

// AuthPhase is the auth slice's lifecycle state
type AuthPhase string

const (
	AuthIdle          AuthPhase = "idle"
	AuthChecking      AuthPhase = "checking"
	AuthAuthenticated AuthPhase = "authenticated"
	AuthAnonymous     AuthPhase = "anonymous"
)

// AuthState is a snapshot of the auth slice
type AuthState struct {
	Phase AuthPhase
	User  *entities.User
}

// TaskState is a snapshot of the tasks slice. Percentage is never
// derived here; it arrives server-computed on every mutation response.
type TaskState struct {
	Items   []entities.Task
	Loading bool
	Err     string
	Query   string
}

// Store is an explicit state container mirroring server data. It is
// injected into views rather than shared globally; all mutation goes
// through the action methods below. The dark-mode preference is
// persisted outside the container (see Preferences).
type Store struct {
	mu    sync.RWMutex
	auth  AuthState
	tasks TaskState
}

// NewStore creates a container in the idle phase with no tasks
func NewStore() *Store {
	return &Store{
		auth:  AuthState{Phase: AuthIdle},
		tasks: TaskState{Items: []entities.Task{}},
	}
}

// Auth returns a snapshot of the auth slice
func (s *Store) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// Tasks returns a snapshot of the tasks slice
func (s *Store) Tasks() TaskState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.tasks
	snap.Items = append([]entities.Task(nil), s.tasks.Items...)
	return snap
}

// BeginSessionCheck moves idle → checking
func (s *Store) BeginSessionCheck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.Phase = AuthChecking
}

// SetAuthenticated records the logged-in user and seeds the tasks
// slice from the user's embedded task list.
func (s *Store) SetAuthenticated(user *entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{Phase: AuthAuthenticated, User: user}
	items := user.Tasks
	if items == nil {
		items = []entities.Task{}
	}
	s.tasks = TaskState{Items: items}
}

// SetAnonymous clears the user and the task list
func (s *Store) SetAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthState{Phase: AuthAnonymous}
	s.tasks = TaskState{Items: []entities.Task{}}
}

// SetTasks replaces the task list
func (s *Store) SetTasks(tasks []entities.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tasks == nil {
		tasks = []entities.Task{}
	}
	s.tasks.Items = tasks
	s.tasks.Err = ""
}

// AddTask appends a server-created task
func (s *Store) AddTask(task entities.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Items = append(s.tasks.Items, task)
	s.tasks.Err = ""
}

// UpdateTask replaces the task with the same id, if present
func (s *Store) UpdateTask(task entities.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks.Items {
		if s.tasks.Items[i].ID == task.ID {
			s.tasks.Items[i] = task
			break
		}
	}
	s.tasks.Err = ""
}

// RemoveTask deletes the task with the given id, if present
func (s *Store) RemoveTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks.Items {
		if s.tasks.Items[i].ID == taskID {
			s.tasks.Items = append(s.tasks.Items[:i], s.tasks.Items[i+1:]...)
			break
		}
	}
	s.tasks.Err = ""
}

// SetQuery updates the free-text search query
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Query = query
}

// ClearSearch resets the search query
func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Query = ""
}

// SetLoading flips the in-flight flag; views disable their buttons
// while it is set.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Loading = loading
}

// SetError records the last failure message for transient display
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.Err = msg
}
