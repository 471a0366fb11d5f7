// Package errors defines the structured error type shared by every wonders
// package. Errors carry a stable code so callers (and tests) can classify a
// failure without matching on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Program tree errors. A program is misconfigured (duplicate command
	// names, a command with nothing to run), a command could not be resolved,
	// an action handler failed, or a node could not be rendered.
	ErrConfiguration ErrorCode = "CONFIGURATION"
	ErrResolution    ErrorCode = "RESOLUTION"
	ErrHandler       ErrorCode = "HANDLER"
	ErrRender        ErrorCode = "RENDER"

	// Boundary errors
	ErrOutput ErrorCode = "OUTPUT"
	ErrMarkup ErrorCode = "MARKUP"

	// Settings errors (config files and environment)
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// WondersError represents a structured error with code and details
type WondersError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WondersError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WondersError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a WondersError with the same code
func (e *WondersError) Is(target error) bool {
	var targetErr *WondersError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WondersError with the given code and message
func New(code ErrorCode, message string) *WondersError {
	return &WondersError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WondersError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WondersError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a WondersError.
// A nil err yields a nil *WondersError; callers returning error must check
// err first.
func Wrap(err error, code ErrorCode, message string) *WondersError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WondersError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *WondersError) WithDetail(key string, value interface{}) *WondersError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *WondersError) WithDetails(details map[string]interface{}) *WondersError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var wErr *WondersError
	if errors.As(err, &wErr) {
		return wErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WondersError
func GetErrorCode(err error) ErrorCode {
	var wErr *WondersError
	if errors.As(err, &wErr) {
		return wErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WondersError
func GetErrorDetails(err error) map[string]interface{} {
	var wErr *WondersError
	if errors.As(err, &wErr) {
		return wErr.Details
	}
	return nil
}
