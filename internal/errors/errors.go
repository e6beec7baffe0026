package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (VALIDATION-001 to VALIDATION-099)
	ErrCodeEmailRequired    ErrorCode = "VALIDATION-001"
	ErrCodePasswordRequired ErrorCode = "VALIDATION-002"
	ErrCodeNameRequired     ErrorCode = "VALIDATION-003"
	ErrCodePhoneRequired    ErrorCode = "VALIDATION-004"
	ErrCodeTitleRequired    ErrorCode = "VALIDATION-005"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeNotAuthenticated   ErrorCode = "AUTH-001"
	ErrCodeLoginFailed        ErrorCode = "AUTH-002"
	ErrCodeRegistrationFailed ErrorCode = "AUTH-003"
	ErrCodeSessionInvalidated ErrorCode = "AUTH-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIUnauthorized ErrorCode = "API-002"
	ErrCodeAPIServer       ErrorCode = "API-003"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetwork ErrorCode = "NET-001"
	ErrCodeTimeout ErrorCode = "NET-002"

	// Cache errors (CACHE-001 to CACHE-099)
	ErrCodeCacheLoad ErrorCode = "CACHE-001"

	// Credential storage errors (CRED-001 to CRED-099)
	ErrCodeCredentialRead    ErrorCode = "CRED-001"
	ErrCodeCredentialWrite   ErrorCode = "CRED-002"
	ErrCodeCredentialDecrypt ErrorCode = "CRED-003"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"
)

// ClientError represents an enhanced error with code, suggestions, and a
// short user-facing message
type ClientError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  - %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the short human-readable message for display.
// Codes, causes, and suggestions are never part of it.
func (e *ClientError) UserMessage() string {
	return e.Message
}

// New creates a new ClientError
func New(code ErrorCode, message string) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ClientError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ClientError {
	return &ClientError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ClientError) WithSuggestion(suggestion string) *ClientError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// Common error constructors for frequently used errors

// NewNotAuthenticatedError indicates a command requires a logged-in session
func NewNotAuthenticatedError() *ClientError {
	return New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'naxum auth login' to authenticate")
}

// NewValidationError creates a pre-flight input validation error.
// Validation errors are surfaced before any network call and never retried.
func NewValidationError(code ErrorCode, field string) *ClientError {
	return New(code, fmt.Sprintf("%s is required", field))
}
