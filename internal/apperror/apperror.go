// Package apperror defines the application's error taxonomy.
//
// Three kinds of failure exist:
//   - ErrNotFound: expected, rendered as a 404 message, never logged as an error
//   - ErrRemote: GitHub failed (GraphQL error or transport failure), rendered by
//     the top-level error boundary
//   - ConfigError: startup misconfiguration, fatal before any request is served
//
// ErrValidation covers malformed requests to our own HTTP resources.
package apperror

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when no message can be extracted from an error.
const FallbackMessage = "Unknown Error"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrRemote     = errors.New("remote error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// UserNotFound is the 404 condition of the profile page.
// The message is shown to the user verbatim, so login is inserted as typed,
// without Go quoting or escaping.
func UserNotFound(login string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: `No user with the login "` + login + `" exists.`,
		Field:   "q",
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// RemoteError is returned when GitHub could not answer a query.
// Message carries the upstream message; Cause the underlying error, if any.
type RemoteError struct {
	Message string
	Cause   error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return FallbackMessage
	}
	return e.Message
}

// Is makes errors.Is(err, ErrRemote) true for every RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// RemoteFailure wraps a failed GitHub call.
// An empty message falls back to the cause's text.
func RemoteFailure(message string, cause error) *RemoteError {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &RemoteError{Message: message, Cause: cause}
}

// ConfigError reports a missing or invalid startup setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Message)
}

// MessageOf extracts a human-readable message from err.
// Typed application errors yield their Message; anything else its Error()
// text; an empty result becomes FallbackMessage.
func MessageOf(err error) string {
	if err == nil {
		return FallbackMessage
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Error()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
