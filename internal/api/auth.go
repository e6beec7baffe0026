package api

import (
	"context"
	"net/http"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request.
// InviteCode associates the new account with an inviter server-side.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	InviteCode string `json:"inviteCode,omitempty"`
}

// AuthResult is the payload returned by login and register
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Register creates a new account and returns its first session
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Me retrieves the currently authenticated user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout notifies the server that the session is ending.
// Callers treat failures as best-effort; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
