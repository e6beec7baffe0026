// Package exitcode maps errors to process exit codes.
package exitcode

import (
	stderrors "errors"
	"os"

	"github.com/kcmikee/michaelEsenwa-mobile-app/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates rejected input before any request was made
	ValidationError = 3

	// AuthError indicates an authentication failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var clientErr *errors.ClientError
	if !stderrors.As(err, &clientErr) {
		return GeneralError
	}

	switch clientErr.Code {
	case errors.ErrCodeEmailRequired,
		errors.ErrCodePasswordRequired,
		errors.ErrCodeNameRequired,
		errors.ErrCodePhoneRequired,
		errors.ErrCodeTitleRequired:
		return ValidationError
	case errors.ErrCodeNotAuthenticated,
		errors.ErrCodeLoginFailed,
		errors.ErrCodeRegistrationFailed,
		errors.ErrCodeSessionInvalidated,
		errors.ErrCodeAPIUnauthorized:
		return AuthError
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return NetworkError
	default:
		return GeneralError
	}
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationError:
		return "Validation error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
