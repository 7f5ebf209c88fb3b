// Package client is the programmatic consumer of the Tasklet API: an
// HTTP client carrying the session cookie, an explicit state container
// mirroring server data, and pure derivation helpers for views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/ports"
)

// APIError carries the status and error message of a failed call
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 API error; callers route
// to the login screen on it without distinguishing subtypes.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the Tasklet API. The cookie jar holds the session
// cookie between calls, so one Client is one logged-in identity.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API at baseURL
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type userEnvelope struct {
	User *entities.User `json:"user"`
}

type taskEnvelope struct {
	Task *entities.Task `json:"task"`
}

type tasksEnvelope struct {
	Tasks []entities.Task `json:"tasks"`
}

// Login authenticates and stores the session cookie in the jar
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (*entities.User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/login", loginBody{Email: email, Password: password, RememberMe: rememberMe}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

// CheckSession returns the current user, or nil when anonymous
func (c *Client) CheckSession(ctx context.Context) (*entities.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/check-session", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout clears the server-set cookie (the token itself is not revoked)
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// ListTasks fetches the caller's full task list
func (c *Client) ListTasks(ctx context.Context) ([]entities.Task, error) {
	var out tasksEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CreateTask creates a task and returns the server-assigned record
func (c *Client) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	var out taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

// UpdateTask sends a partial update; the response carries the merged
// task with the server-recomputed percentage.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	var out taskEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+taskID, req, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

// DeleteTask removes a task
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var parsed struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &parsed) == nil && parsed.Error != "" {
			apiErr.Message = parsed.Error
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
