// Package errors provides structured error types for the BuiltWith client.
//
// Every error the client returns is an [*Error] carrying a machine-readable
// [Code], so callers can branch on the failure kind without string matching:
//
//   - CONFIGURATION: the client was constructed with a missing key or an
//     unknown response format. Surfaced by the constructor, before any request.
//   - INVALID_INPUT: a required lookup argument was empty or unusable.
//   - NETWORK_ERROR / HTTP_STATUS: the request could not be completed or the
//     service answered with a non-2xx status.
//   - PARSE_ERROR: the body was not valid in the expected structured format.
//
// # Usage
//
//	res, err := client.Free(ctx, "example.com")
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // The service sent something that is not JSON
//	}
//
// The cause is preserved, so the standard library's errors.Is and errors.As
// keep working on the wrapped error (e.g. *url.Error, context.Canceled).
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction errors
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Transport errors
	ErrCodeNetwork    Code = "NETWORK_ERROR"
	ErrCodeHTTPStatus Code = "HTTP_STATUS"

	// Response errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// StatusError describes a non-2xx answer from the service.
// It is always wrapped in an *Error with code HTTP_STATUS.
type StatusError struct {
	StatusCode int    // HTTP status code
	Body       string // Leading part of the response body
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// IsTransport reports whether err is a network or HTTP status failure.
func IsTransport(err error) bool {
	return Is(err, ErrCodeNetwork) || Is(err, ErrCodeHTTPStatus)
}
