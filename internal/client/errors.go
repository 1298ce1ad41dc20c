package client

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is.
var (
	ErrRequestFailed = errors.New("request failed")
	ErrNetwork       = errors.New("network error")
)

// RequestFailedError is returned for non-success responses.
type RequestFailedError struct {
	Op      string
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: request failed with status %d: %s", e.Op, e.Status, e.Message)
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// NetworkError is returned when the backend could not be reached or timed out.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
