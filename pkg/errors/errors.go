// Package errors provides structured error types for invoicer.
//
// Every failure the renderer can report carries a machine-readable [Code]
// so that the CLI and the HTTP API can react to it without string matching:
//   - INVALID_*: input validation failures (rate, hours, items, paths)
//   - EMPTY_DOCUMENT: nothing meaningful to lay out
//   - SINK_WRITE_FAILURE: the document sink rejected a write or finalize
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRate, "rate must be positive, got %s", rate)
//	if errors.Is(err, errors.ErrCodeInvalidRate) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors; the cause stays reachable through Unwrap.
//	err := errors.Wrap(errors.ErrCodeSinkWrite, ioErr, "write row %d", row)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidRate    Code = "INVALID_RATE"
	ErrCodeInvalidHours   Code = "INVALID_HOURS"
	ErrCodeInvalidItem    Code = "INVALID_ITEM"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPalette Code = "INVALID_PALETTE"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Layout errors
	ErrCodeEmptyDocument Code = "EMPTY_DOCUMENT"

	// Output errors
	ErrCodeSinkWrite Code = "SINK_WRITE_FAILURE"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// UserMessage returns the message of err without code prefixes. Causes are
// appended after a colon, so a wrapped sink or validation failure still
// names what went wrong: "row 12 col 3: set cell: disk full".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the renderer or its sink.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidRate, ErrCodeInvalidHours, ErrCodeInvalidItem,
		ErrCodeInvalidFormat, ErrCodeInvalidPalette, ErrCodeInvalidPath, ErrCodeEmptyDocument:
		return true
	}
	return false
}
