package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/config"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/infrastructure/store"
)

func testConfig(storePath string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Tasklet",
			Version:     "test",
			Environment: "test",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
		Store: config.StoreConfig{
			Path:        storePath,
			LockTimeout: 3 * time.Second,
		},
		Session: config.SessionConfig{
			CookieName:   "session",
			RememberDays: 30,
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: "*",
			RateLimitRequests:  1000,
			RateLimitWindow:    time.Minute,
		},
		Metrics: config.MetricsConfig{Enabled: false},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	storePath := filepath.Join(t.TempDir(), "users.json")
	userStore := store.New(storePath, 3*time.Second)
	require.NoError(t, userStore.Save(context.Background(), []entities.User{
		{
			ID:       "user-1",
			Email:    "demo@tasklet.dev",
			Password: "demo1234",
			Name:     "Demo",
			Tasks:    []entities.Task{},
		},
	}))

	srv, err := New(testConfig(storePath), userStore, logger.NewNop())
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func login(t *testing.T, srv *Server, rememberMe bool) *http.Cookie {
	t.Helper()

	body := `{"email":"demo@tasklet.dev","password":"demo1234","rememberMe":false}`
	if rememberMe {
		body = `{"email":"demo@tasklet.dev","password":"demo1234","rememberMe":true}`
	}
	rec := doJSON(t, srv, http.MethodPost, "/api/login", body, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func TestLoginSetsCookieAndReturnsUser(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/login",
		`{"email":"demo@tasklet.dev","password":"demo1234","rememberMe":false}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 0, cookie.MaxAge, "session-scoped without rememberMe")

	var body struct {
		User *entities.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.User)
	assert.Equal(t, "user-1", body.User.ID)
	assert.Empty(t, body.User.Password)
}

func TestLoginWithRememberMeSetsMultiDayMaxAge(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/login",
		`{"email":"demo@tasklet.dev","password":"demo1234","rememberMe":true}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)

	// The remembered cookie keeps authenticating without credentials.
	rec = doJSON(t, srv, http.MethodGet, "/api/check-session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User *entities.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.User)
	assert.Equal(t, "user-1", body.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/login",
		`{"email":"demo@tasklet.dev","password":"nope","rememberMe":false}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestCheckSessionWithoutCookieIsNullUser(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/check-session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthGateRejections(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		cookie      *http.Cookie
		wantCleared bool
	}{
		{"no cookie", nil, false},
		{
			"undecodable token",
			&http.Cookie{Name: "session", Value: "!!!"},
			true,
		},
		{
			"token with empty user id",
			&http.Cookie{Name: "session", Value: base64.StdEncoding.EncodeToString([]byte(":123:abcd"))},
			true,
		},
		{
			"token naming unknown user",
			&http.Cookie{Name: "session", Value: base64.StdEncoding.EncodeToString([]byte("ghost:123:abcd"))},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodGet, "/api/tasks", "", tt.cookie)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Not authenticated")

			if tt.wantCleared {
				cookie := sessionCookie(t, rec)
				assert.Empty(t, cookie.Value)
				assert.Negative(t, cookie.MaxAge)
			}
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, false)

	// Create
	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", `{"title":"Groceries"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Task entities.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Task.ID)
	assert.Equal(t, "Groceries", created.Task.Title)
	assert.Equal(t, 0, created.Task.Percentage)
	assert.Equal(t, []entities.SubTask{}, created.Task.SubTasks)

	// List round-trip
	rec = doJSON(t, srv, http.MethodGet, "/api/tasks", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Tasks []entities.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Tasks, 1)
	assert.Equal(t, created.Task.ID, listed.Tasks[0].ID)

	// Update with messy subtasks: missing id, non-boolean completed
	rec = doJSON(t, srv, http.MethodPut, "/api/tasks/"+created.Task.ID,
		`{"subTasks":[{"title":"milk","description":"2l","completed":"yes"},{"title":"bread","completed":false}]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Task entities.Task `json:"task"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.Task.SubTasks, 2)
	assert.NotEmpty(t, updated.Task.SubTasks[0].ID, "generated id is returned")
	assert.True(t, updated.Task.SubTasks[0].Completed, `"yes" coerces to true`)
	assert.False(t, updated.Task.SubTasks[1].Completed)
	assert.Equal(t, 50, updated.Task.Percentage)

	// Delete, then delete again
	rec = doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.Task.ID, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task deleted successfully")

	rec = doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.Task.ID, "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, false)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", `{"title":"   "}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title is required")
}

func TestUpdateUnknownTaskIs404(t *testing.T) {
	srv := newTestServer(t)
	cookie := login(t, srv, false)

	rec := doJSON(t, srv, http.MethodPut, "/api/tasks/missing", `{"title":"x"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}

func TestHealthAndReadiness(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
