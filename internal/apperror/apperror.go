// Package apperror defines the error taxonomy shared by every layer of the
// client. Callers classify failures with errors.Is against the sentinels;
// the CLI (or any other surface) decides how to present them.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth covers bad credentials and any non-2xx from the login endpoint.
	ErrAuth = errors.New("authentication failed")

	// ErrNetwork covers transport failures and non-2xx responses from the
	// content and media endpoints.
	ErrNetwork = errors.New("network error")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrMalformedState marks unparseable persisted JSON. It never crosses a
	// store boundary (stores treat malformed state as absent) but the sentinel
	// keeps the degradation a named branch.
	ErrMalformedState = errors.New("malformed persisted state")
)

// AppError pairs a sentinel with a human-readable message. Message is safe to
// show to the user; Err drives programmatic handling via errors.Is.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AuthFailed wraps a login failure with the backend's (or our own) message.
func AuthFailed(message string) *AppError {
	if message == "" {
		message = "login failed"
	}
	return &AppError{Err: ErrAuth, Message: message}
}

// Network wraps a transport or backend failure. op names the attempted call,
// e.g. "GET /api/content/chapters".
func Network(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrNetwork, cause),
		Message: fmt.Sprintf("%s: %v", op, cause),
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}
