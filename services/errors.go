// File: /services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Kind classifies service errors so callers can map them to transport
// responses without string matching.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalidOperation Kind = "invalid_operation"
	KindInvalidToken     Kind = "invalid_token"
	KindUnavailable      Kind = "unavailable"
)

// Error is the error type returned by all services and stores.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the Kind from err, or "" if err is not a service error.
func KindOf(err error) Kind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return ""
}

// NotFoundError reports an absent user or record.
func NotFoundError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a violated uniqueness or state invariant.
func ConflictError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidOperationError reports a self-targeting action.
func InvalidOperationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// InvalidTokenError reports a credential that failed verification.
func InvalidTokenError(message string, err error) *Error {
	return &Error{Kind: KindInvalidToken, Message: message, Err: err}
}

// UnavailableError wraps a storage or transport failure. It is propagated to
// the caller, never retried here.
func UnavailableError(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}
