package controller

import (
	"errors"
	"fmt"
)

// ErrInvalidBaseURL indicates the configured controller URL cannot be used.
var ErrInvalidBaseURL = errors.New("invalid controller base URL")

// StatusError is a non-2xx controller response.
type StatusError struct {
	Op   string // Operation that failed (e.g., "list_services")
	Code int    // HTTP status code
	Body string // Truncated response body
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("controller %s: status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("controller %s: status %d: %s", e.Op, e.Code, e.Body)
}

// RequestError wraps transport and decoding failures with the operation.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("controller %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
