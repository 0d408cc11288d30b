package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested session, view, or platform post
// does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrSessionNotFound narrows ErrNotFound to an unknown or expired session.
// errors.Is matches both.
var ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. no platform selected, unknown platform name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStorageUnavailable is returned by slot backends when the underlying
// medium cannot be reached. Services log it and fall back to defaults;
// it never reaches an HTTP client.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrSubmissionInProgress is returned when a generate or publish call arrives
// while another one is still running for the same session.
// Handlers should map this to HTTP 409 Conflict.
var ErrSubmissionInProgress = errors.New("submission in progress")

// ErrSubmissionTimeout is returned when the submission effect does not finish
// before its deadline. Handlers should map this to HTTP 504.
var ErrSubmissionTimeout = errors.New("submission timed out")
