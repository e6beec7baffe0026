package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientError_Error(t *testing.T) {
	err := New(ErrCodeLoginFailed, "Login failed")
	assert.Equal(t, "[AUTH-002] Login failed", err.Error())
}

func TestClientError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, "request failed", cause)

	assert.Contains(t, err.Error(), "[NET-001] request failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClientError_ErrorWithSuggestions(t *testing.T) {
	err := New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'naxum auth login' to authenticate")

	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "naxum auth login")
}

func TestClientError_Unwrap(t *testing.T) {
	cause := stderrors.New("timeout")
	err := Wrap(ErrCodeTimeout, "request timed out", cause)

	require.True(t, stderrors.Is(err, cause))

	var clientErr *ClientError
	require.True(t, stderrors.As(err, &clientErr))
	assert.Equal(t, ErrCodeTimeout, clientErr.Code)
}

func TestClientError_UserMessage(t *testing.T) {
	err := Wrap(ErrCodeLoginFailed, "Login failed", stderrors.New("status 500")).
		WithSuggestion("try again")

	// The user-facing message carries no codes, causes, or suggestions.
	assert.Equal(t, "Login failed", err.UserMessage())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(ErrCodeEmailRequired, "email")
	assert.Equal(t, ErrCodeEmailRequired, err.Code)
	assert.Equal(t, "email is required", err.Message)
}
