// Package errors carries machine-readable error codes across the Causeway
// surfaces. A cycle detected deep in a depth computation surfaces as the
// same coded failure in the CLI and in the HTTP API, where [Code.HTTPStatus]
// maps it to a response status.
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidManifest, "hyperedge %d has no members", i)
//	if errors.Is(err, errors.ErrCodeInvalidManifest) {
//	    // handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCycle, cause, "stats for graph %s", id)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category.
type Code string

const (
	// Input validation
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidGraph    Code = "INVALID_GRAPH"

	// Graph structure
	ErrCodeUnknownEvent Code = "UNKNOWN_EVENT"
	ErrCodeCycle        Code = "CYCLE_DETECTED"

	// Resources
	ErrCodeNotFound Code = "NOT_FOUND"

	// Everything else
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// HTTPStatus maps the code to its HTTP response status. Caller mistakes are
// 4xx; a cycle is a conflict with the state of the stored graph; anything
// unrecognized is a server fault.
func (c Code) HTTPStatus() int {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidManifest,
		ErrCodeInvalidGraph, ErrCodeUnknownEvent:
		return http.StatusBadRequest
	case ErrCodeCycle:
		return http.StatusConflict
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error pairs a code with a human-readable message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around an existing cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the code from an error chain, or "" when no *Error is
// present.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error
// values, and err.Error() for anything else.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
