package entities

import (
	"encoding/json"
	"errors"
	"math"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidSession     = errors.New("invalid session")
	ErrTitleRequired      = errors.New("title is required")
)

// User represents an account and its embedded task list. The whole
// collection of users is persisted as a single JSON array; tasks are
// never stored apart from their owner.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Tasks    []Task `json:"tasks"`
}

// Sanitized returns a copy of the user safe to send to clients.
func (u *User) Sanitized() *User {
	out := *u
	out.Password = ""
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	return &out
}

// Task is a single task owned by exactly one user. Percentage is a
// denormalized cache of subtask completion and must be recomputed on
// every subtask mutation.
type Task struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SubTasks   []SubTask `json:"subTasks"`
	Percentage int       `json:"percentage"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Time       string    `json:"time"` // HH:mm, 24h
	Icon       string    `json:"icon,omitempty"`
}

// SubTask belongs to exactly one task; the order of the parent's
// subtask slice is significant (drag-and-drop reorders it in place).
type SubTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// CompletionPercentage returns round(100 * completed / total) for a
// subtask sequence, or 0 when the sequence is empty.
func CompletionPercentage(subs []SubTask) int {
	if len(subs) == 0 {
		return 0
	}
	done := 0
	for _, st := range subs {
		if st.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(subs)) * 100))
}

// Truthy is a bool that accepts any JSON value and coerces it the way
// loosely-typed clients expect: null, false, 0 and "" are false,
// everything else is true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(x)
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		// arrays and objects
		*t = true
	}
	return nil
}

func (t Truthy) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(t))
}
