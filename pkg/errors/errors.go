// Package errors provides structured error types for the commute toolchain.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the library
//   - Machine-readable error codes for programmatic handling
//   - Source positions (line and character offset) for authoring errors
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Malformed input (labels, equations, diagrams, formats)
//   - DUPLICATE_*: Conflicting definitions
//   - NOT_FOUND / FILE_NOT_FOUND: Missing resources
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEquation, "%q found before any morphism", "=")
//	err = errors.At(err, 3, 0)
//	if errors.Is(err, errors.ErrCodeInvalidEquation) {
//	    // Handle authoring error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Authoring errors in the text formats
	ErrCodeInvalidLabel    Code = "INVALID_LABEL"
	ErrCodeInvalidEquation Code = "INVALID_EQUATION"
	ErrCodeInvalidDiagram  Code = "INVALID_DIAGRAM"

	// Structural conflicts
	ErrCodeDuplicateMorphism Code = "DUPLICATE_MORPHISM"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource limits
	ErrCodeLimitExceeded Code = "LIMIT_EXCEEDED"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code, an optional source position and
// an optional cause.
//
// Line is 1-based; a zero Line means the error has no position. Offset is the
// 0-based character (rune) offset within the line.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
	Line    int    // 1-based line number, 0 if unknown
	Offset  int    // 0-based character offset within Line
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d:%d: %s", e.Line, e.Offset, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HasPosition reports whether the error carries a source position.
func (e *Error) HasPosition() bool {
	return e.Line > 0
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

// At attaches a source position to err and returns it.
//
// If err is an *Error without a position, the position is set in place.
// Positions already present are kept, so the innermost location wins.
// Any other error is wrapped as ErrCodeInternal with the position.
func At(err error, line, offset int) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if !e.HasPosition() {
			e.Line, e.Offset = line, offset
		}
		return err
	}
	return &Error{Code: ErrCodeInternal, Message: "unexpected error", Cause: err, Line: line, Offset: offset}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Position returns the source position of the first positioned *Error in
// err's chain.
func Position(err error) (line, offset int, ok bool) {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return 0, 0, false
		}
		if e.HasPosition() {
			return e.Line, e.Offset, true
		}
		err = e.Cause
	}
	return 0, 0, false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with position) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.HasPosition() {
			return fmt.Sprintf("line %d:%d: %s", e.Line, e.Offset, e.Message)
		}
		return e.Message
	}
	return err.Error()
}
