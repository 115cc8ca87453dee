// Package errors provides structured error types for microprint.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the batch runner and the engine
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The export engine reports exactly four failure kinds:
//   - REGION_UNAVAILABLE: the region is detached or unknown at capture time
//   - EMPTY_CAPTURE: the capture produced a zero-area bitmap
//   - BACKEND_UNAVAILABLE: the raster backend or output buffer could not be acquired
//   - UNKNOWN: anything else, including recovered panics
//
// The remaining codes are used by callers (spec parsing, delivery, the busy
// guard) before or after the engine runs.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSpec, "dpi must be positive, got %v", dpi)
//	if errors.Is(err, errors.ErrCodeInvalidSpec) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBackendUnavailable, origErr, "launch browser")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Export failures
	ErrCodeRegionUnavailable  Code = "REGION_UNAVAILABLE"
	ErrCodeEmptyCapture       Code = "EMPTY_CAPTURE"
	ErrCodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"
	ErrCodeUnknown            Code = "UNKNOWN"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSpec     Code = "INVALID_SPEC"
	ErrCodeInvalidFilename Code = "INVALID_FILENAME"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Lookup and caller-side errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeBusy           Code = "BUSY"
	ErrCodeDeliveryFailed Code = "DELIVERY_FAILED"
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

// IsExportFailure reports whether err carries one of the four engine codes.
func IsExportFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeRegionUnavailable, ErrCodeEmptyCapture, ErrCodeBackendUnavailable, ErrCodeUnknown:
		return true
	}
	return false
}
