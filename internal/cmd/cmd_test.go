package cmd

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
)

// run executes the CLI against a fake API rooted at a throwaway home.
func run(t *testing.T, serverURL, home string, args ...string) error {
	t.Helper()

	rootCmd.SetArgs(append(args, "--home", home, "--api-url", serverURL))
	return rootCmd.Execute()
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "invalid credentials"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": api.AuthResult{
				User:  api.User{ID: 1, Email: req.Email, Name: "Team Leader", Role: api.RoleLeader},
				Token: "tok-abc",
			},
		})
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{}})
	})
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "missing token"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []api.Task{{ID: 1, Title: "Call leads", Status: api.TaskPending}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginThenListTasks(t *testing.T) {
	server := fakeAPI(t)
	home := t.TempDir()

	err := run(t, server.URL, home, "auth", "login",
		"--email", "leader@naxum.com", "--password", "password123")
	require.NoError(t, err)

	// The persisted session carries into the next invocation.
	err = run(t, server.URL, home, "tasks", "list")
	require.NoError(t, err)
}

func TestLogin_BadPassword(t *testing.T) {
	server := fakeAPI(t)

	err := run(t, server.URL, t.TempDir(), "auth", "login",
		"--email", "leader@naxum.com", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestTasksList_RequiresLogin(t *testing.T) {
	server := fakeAPI(t)

	err := run(t, server.URL, t.TempDir(), "tasks", "list")
	require.Error(t, err)

	var clientErr *errors.ClientError
	require.True(t, stderrors.As(err, &clientErr))
	assert.Equal(t, errors.ErrCodeNotAuthenticated, clientErr.Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	server := fakeAPI(t)
	home := t.TempDir()

	require.NoError(t, run(t, server.URL, home, "auth", "login",
		"--email", "leader@naxum.com", "--password", "password123"))
	require.NoError(t, run(t, server.URL, home, "auth", "logout"))

	err := run(t, server.URL, home, "tasks", "list")
	require.Error(t, err)
}

func TestTasksCreate_RequiresTitle(t *testing.T) {
	server := fakeAPI(t)

	err := run(t, server.URL, t.TempDir(), "tasks", "create")
	require.Error(t, err)

	var clientErr *errors.ClientError
	require.True(t, stderrors.As(err, &clientErr))
	assert.Equal(t, errors.ErrCodeTitleRequired, clientErr.Code)
}

func TestCommandTree(t *testing.T) {
	expect := map[string][]string{
		"auth":        {"login", "register", "logout", "status", "whoami"},
		"tasks":       {"list", "create", "update", "done", "delete"},
		"team":        {"members", "mine", "hierarchy", "stats", "leader"},
		"invitations": {"list", "send"},
		"config":      {"init", "show"},
	}

	for name, subs := range expect {
		parent, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		require.Equal(t, name, parent.Name())

		for _, sub := range subs {
			found, _, err := rootCmd.Find([]string{name, sub})
			require.NoError(t, err)
			assert.Equal(t, sub, found.Name(), "%s %s", name, sub)
		}
	}
}
