// Package errors provides structured error types for graphedit.
//
// The interaction engine never fails hard: every rejected operation returns one
// of these coded errors, logs a diagnostic, and leaves the graph and selection in
// their previous state. Callers that only care about "did it happen" can ignore
// the error; callers that need to react can switch on the code.
//
// # Error Codes
//
// Codes fall into the three categories the engine distinguishes:
//   - *_NOT_FOUND: lookup misses (a gesture raced a delete)
//   - SELF_LOOP, COPY_EDGE, DRAG_IN_PROGRESS, ...: invalid operations by construction
//   - INVALID_CONFIG, UNKNOWN_SHAPE: configuration gaps
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSelfLoop, "edge %s→%s would be a self-loop", a, a)
//	if errors.Is(err, errors.ErrCodeSelfLoop) {
//	    // ignore, nothing changed
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Lookup misses
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"
	ErrCodeEdgeNotFound Code = "EDGE_NOT_FOUND"

	// Invalid operations by construction
	ErrCodeSelfLoop        Code = "SELF_LOOP"
	ErrCodeDanglingEdge    Code = "DANGLING_EDGE"
	ErrCodeDuplicateKey    Code = "DUPLICATE_KEY"
	ErrCodeNothingSelected Code = "NOTHING_SELECTED"
	ErrCodeCopyEdge        Code = "COPY_EDGE"
	ErrCodeEmptyCopyBuffer Code = "EMPTY_COPY_BUFFER"
	ErrCodeDragInProgress  Code = "DRAG_IN_PROGRESS"
	ErrCodeNoActiveDrag    Code = "NO_ACTIVE_DRAG"

	// Configuration and input
	ErrCodeUnknownShape  Code = "UNKNOWN_SHAPE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// IsLookupMiss reports whether err is a node or edge lookup miss.
func IsLookupMiss(err error) bool {
	switch GetCode(err) {
	case ErrCodeNodeNotFound, ErrCodeEdgeNotFound:
		return true
	}
	return false
}
