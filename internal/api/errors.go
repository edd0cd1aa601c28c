package api

import (
	"errors"
	"fmt"
)

// ValidationError reports caller-side input that failed pre-flight
// checks. It is returned before any network traffic happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrMissingID is the validation error for a by-id operation called
// with an empty id.
var ErrMissingID = &ValidationError{Field: "id", Reason: "must not be empty"}

// TransportError reports a network or HTTP failure, including timeouts
// and non-2xx responses not classified more specifically.
type TransportError struct {
	Status  int    // HTTP status, 0 when the request never got a response
	Message string // server-provided message if any
	Err     error  // underlying cause for network-level failures
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		if e.Message != "" {
			return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a 404 on an entity lookup, distinct from other
// transport failures so callers can render a domain-specific message.
type NotFoundError struct {
	Kind string // "article" or "task"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// TaskFailedError reports a processing task that reached the failed
// state, carrying the backend-provided error text.
type TaskFailedError struct {
	TaskID string
	Reason string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.TaskID, e.Reason)
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
