package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeAPI routes the endpoints the client consumes and records requests.
func newFakeAPI(t *testing.T) (*Client, *mux.Router) {
	t.Helper()

	router := mux.NewRouter()
	client, _ := newTestClient(t, router)
	return client, router
}

func TestLogin(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "leader@naxum.com", req.Email)
		assert.Equal(t, "password123", req.Password)

		writeData(t, w, AuthResult{
			User:  User{ID: 1, Email: req.Email, Name: "Team Leader", Role: RoleLeader},
			Token: "tok-abc",
		})
	}).Methods(http.MethodPost)

	result, err := client.Login(context.Background(), "leader@naxum.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, RoleLeader, result.User.Role)
	assert.Equal(t, "tok-abc", result.Token)
}

func TestRegister(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "INVITE-42", req.InviteCode)

		writeData(t, w, AuthResult{
			User:  User{ID: 2, Email: req.Email, Name: req.Name, Role: RoleMember, InvitedBy: 1},
			Token: "tok-new",
		})
	}).Methods(http.MethodPost)

	result, err := client.Register(context.Background(), RegisterRequest{
		Email:      "member@naxum.com",
		Password:   "password123",
		Name:       "New Member",
		InviteCode: "INVITE-42",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.User.InvitedBy)
	assert.Equal(t, "tok-new", result.Token)
}

func TestMe(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, User{ID: 1, Email: "leader@naxum.com", Role: RoleLeader})
	}).Methods(http.MethodGet)

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "leader@naxum.com", user.Email)
}

func TestListTasks_FilterParams(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("assignedTo"))
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		writeData(t, w, []Task{{ID: 10, Title: "call back", Status: TaskPending}})
	}).Methods(http.MethodGet)

	tasks, err := client.ListTasks(context.Background(), TaskFilter{AssignedTo: 3, Status: TaskPending})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(10), tasks[0].ID)
}

func TestUpdateTask_PartialBody(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Only the toggled status is sent; nil fields stay out of the body.
		assert.Equal(t, map[string]any{"status": "completed"}, body)

		writeData(t, w, Task{ID: id, Status: TaskCompleted})
	}).Methods(http.MethodPut)

	status := TaskCompleted
	task, err := client.UpdateTask(context.Background(), 10, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, TaskCompleted, task.Status)
}

func TestDeleteTask(t *testing.T) {
	client, router := newFakeAPI(t)
	deleted := false
	router.HandleFunc("/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", mux.Vars(r)["id"])
		deleted = true
		writeData(t, w, nil)
	}).Methods(http.MethodDelete)

	require.NoError(t, client.DeleteTask(context.Background(), 10))
	assert.True(t, deleted)
}

func TestTeamEndpoints(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/team/members", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, []TeamMember{{ID: 1, Name: "Team Leader", Role: RoleLeader}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/team/my-team", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, []TeamMember{{ID: 2, Name: "Member", Role: RoleMember}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/team/hierarchy", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, []HierarchyNode{{
			TeamMember: TeamMember{ID: 1, Role: RoleLeader},
			Reports:    []HierarchyNode{{TeamMember: TeamMember{ID: 2}}},
		}})
	}).Methods(http.MethodGet)
	router.HandleFunc("/team/stats", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, TeamStats{TotalMembers: 4, CompletedTasks: 7, CompletionRate: 0.7})
	}).Methods(http.MethodGet)
	router.HandleFunc("/team/leader", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, nil)
	}).Methods(http.MethodGet)

	ctx := context.Background()

	members, err := client.TeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)

	mine, err := client.MyTeam(ctx)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, mine[0].Role)

	hierarchy, err := client.TeamHierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, hierarchy, 1)
	assert.Len(t, hierarchy[0].Reports, 1)

	stats, err := client.TeamStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalMembers)

	// A member without a leader gets a null payload, not an error.
	leader, err := client.TeamLeader(ctx)
	require.NoError(t, err)
	assert.Nil(t, leader)
}

func TestInvitations(t *testing.T) {
	client, router := newFakeAPI(t)
	router.HandleFunc("/invitations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeData(t, w, []Invitation{{ID: 1, RecipientPhone: "+15550100", Status: InvitationPending}})
		case http.MethodPost:
			var input CreateInvitationInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			writeData(t, w, Invitation{
				ID:             2,
				RecipientPhone: input.RecipientPhone,
				RecipientName:  input.RecipientName,
				Status:         InvitationPending,
				InviteLink:     "https://naxum.example/join/INVITE-2",
			})
		}
	}).Methods(http.MethodGet, http.MethodPost)

	ctx := context.Background()

	invitations, err := client.ListInvitations(ctx)
	require.NoError(t, err)
	require.Len(t, invitations, 1)

	created, err := client.CreateInvitation(ctx, CreateInvitationInput{
		RecipientPhone: "+15550101",
		RecipientName:  "Prospect",
	})
	require.NoError(t, err)
	assert.Equal(t, "+15550101", created.RecipientPhone)
	assert.NotEmpty(t, created.InviteLink)
}
