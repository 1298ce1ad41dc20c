package dashboard

import (
	"errors"
	"fmt"
)

// ErrUnknownView is logged when navigation names a view that does not exist.
// It is never returned to callers.
var ErrUnknownView = errors.New("unknown view")

// ErrOffline is returned by session operations while the backend is unreachable.
var ErrOffline = errors.New("backend unavailable, working offline")

// ValidationError reports missing or out-of-range form input. No state is
// mutated when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
