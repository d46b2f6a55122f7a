package types

import "fmt"

// ErrorCode represents a unified error code across the module.
type ErrorCode string

// Memory error codes
const (
	ErrUninitializedMemory ErrorCode = "UNINITIALIZED_MEMORY"
	ErrInvalidCloneCount   ErrorCode = "INVALID_CLONE_COUNT"
	ErrInvalidConfig       ErrorCode = "INVALID_CONFIG"
)

// Store error codes
const (
	ErrSnapshotNotFound ErrorCode = "SNAPSHOT_NOT_FOUND"
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Agent error codes
const (
	ErrGeneratorUnavailable ErrorCode = "GENERATOR_UNAVAILABLE"
)

// Error represents a structured error with code, message, and cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// GetErrorCode extracts the error code from an error.
// Returns the empty code when err is not a *Error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
