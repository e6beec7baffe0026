// Package session owns the client's belief about who is logged in.
//
// All status transitions happen here: login and register route through a
// transient authenticating state, logout and server-signaled invalidation
// drop back to unauthenticated, and restore rebuilds the session from the
// persisted credential pair without a network call.
package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/api"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/credstore"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/log"
)

// Status is the authentication state
type Status int

const (
	// StatusUnauthenticated means no valid session is held
	StatusUnauthenticated Status = iota
	// StatusAuthenticating is the transient state during login or register
	StatusAuthenticating
	// StatusAuthenticated means both user identity and token are held
	StatusAuthenticated
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// State is a consistent snapshot of the session for callers to render.
type State struct {
	Status    Status
	User      *api.User
	Token     string
	LastError string
}

// IsAuthenticated reports whether the snapshot holds a full session
func (s State) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated
}

// Manager is the session state machine.
//
// Invariant: status is StatusAuthenticated exactly when both the user
// identity and the token are held. The manager subscribes to the credential
// store so a 401-driven clear in the HTTP layer immediately flips the
// in-memory status instead of waiting for the next restore.
type Manager struct {
	client *api.Client
	creds  *credstore.Store
	logger *log.Logger

	mu        sync.Mutex
	status    Status
	user      *api.User
	token     string
	lastError string
}

// NewManager creates a session manager bound to the given client and store.
func NewManager(client *api.Client, creds *credstore.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	m := &Manager{
		client: client,
		creds:  creds,
		logger: logger,
		status: StatusUnauthenticated,
	}

	creds.OnClear(m.invalidated)

	return m
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := State{
		Status:    m.status,
		Token:     m.token,
		LastError: m.lastError,
	}
	if m.user != nil {
		userCopy := *m.user
		state.User = &userCopy
	}
	return state
}

// Login authenticates with email and password.
//
// On success the credential pair is persisted and the session becomes
// authenticated. On failure the session stays unauthenticated, a short
// human-readable message is recorded, and the error is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if email == "" {
		return errors.NewValidationError(errors.ErrCodeEmailRequired, "email")
	}
	if password == "" {
		return errors.NewValidationError(errors.ErrCodePasswordRequired, "password")
	}

	m.begin()

	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.fail(humanMessage(err, "Login failed"))
		return errors.Wrap(errors.ErrCodeLoginFailed, humanMessage(err, "Login failed"), err)
	}

	return m.establish(result)
}

// Register creates a new account and starts its first session.
// The contract mirrors Login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	if req.Email == "" {
		return errors.NewValidationError(errors.ErrCodeEmailRequired, "email")
	}
	if req.Password == "" {
		return errors.NewValidationError(errors.ErrCodePasswordRequired, "password")
	}
	if req.Name == "" {
		return errors.NewValidationError(errors.ErrCodeNameRequired, "name")
	}

	m.begin()

	result, err := m.client.Register(ctx, req)
	if err != nil {
		m.fail(humanMessage(err, "Registration failed"))
		return errors.Wrap(errors.ErrCodeRegistrationFailed, humanMessage(err, "Registration failed"), err)
	}

	return m.establish(result)
}

// Logout ends the session.
//
// The remote notification is best-effort: local credentials are cleared and
// the session reset even when the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.WithError(err).Warn("remote logout failed, clearing local session anyway")
	}

	if err := m.creds.Clear(); err != nil {
		m.logger.WithError(err).Warn("failed to clear stored credentials")
	}

	m.mu.Lock()
	m.status = StatusUnauthenticated
	m.user = nil
	m.token = ""
	m.lastError = ""
	m.mu.Unlock()

	return nil
}

// Restore rebuilds the session from persisted credentials.
//
// When both halves of the pair are present the session becomes
// authenticated without any network call; revocation is discovered lazily
// by the HTTP layer on the next request. Otherwise the session stays
// unauthenticated.
func (m *Manager) Restore() error {
	token, userJSON, ok := m.creds.Load()
	if !ok {
		return nil
	}

	var user api.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		m.logger.WithError(err).Warn("stored user record is corrupt, clearing credentials")
		if clearErr := m.creds.Clear(); clearErr != nil {
			m.logger.WithError(clearErr).Warn("failed to clear stored credentials")
		}
		return errors.Wrap(errors.ErrCodeCredentialRead, "stored session is corrupt", err)
	}

	m.mu.Lock()
	m.status = StatusAuthenticated
	m.user = &user
	m.token = token
	m.lastError = ""
	m.mu.Unlock()

	return nil
}

// ClearError drops the recorded failure message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.lastError = ""
	m.mu.Unlock()
}

// begin enters the transient authenticating state.
func (m *Manager) begin() {
	m.mu.Lock()
	m.status = StatusAuthenticating
	m.lastError = ""
	m.mu.Unlock()
}

// fail records a failed authentication attempt.
func (m *Manager) fail(message string) {
	m.mu.Lock()
	m.status = StatusUnauthenticated
	m.user = nil
	m.token = ""
	m.lastError = message
	m.mu.Unlock()
}

// establish persists and installs a fresh session.
func (m *Manager) establish(result *api.AuthResult) error {
	userJSON, err := json.Marshal(result.User)
	if err != nil {
		m.fail("Login failed")
		return errors.Wrap(errors.ErrCodeCredentialWrite, "failed to encode user record", err)
	}

	if err := m.creds.Save(result.Token, userJSON); err != nil {
		m.fail("Login failed")
		return err
	}

	user := result.User
	m.mu.Lock()
	m.status = StatusAuthenticated
	m.user = &user
	m.token = result.Token
	m.lastError = ""
	m.mu.Unlock()

	return nil
}

// invalidated reacts to the credential store being cleared.
//
// Fires for explicit logout and for 401-driven clears alike; resetting an
// already-unauthenticated session is harmless.
func (m *Manager) invalidated() {
	m.mu.Lock()
	if m.status == StatusAuthenticated {
		m.logger.Debug("session invalidated, credentials cleared")
	}
	m.status = StatusUnauthenticated
	m.user = nil
	m.token = ""
	m.mu.Unlock()
}

// humanMessage extracts a short display message from an accessor error.
func humanMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if stderrors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != "operation failed" {
		return apiErr.Message
	}
	return fallback
}
