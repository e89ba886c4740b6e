// Package errors provides structured error types for the rnaplot application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages with source positions
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Two categories exist. Input errors describe problems with the structure
// string, sequence, or probability vector supplied by the caller and carry
// the offending source index where one exists. Internal errors describe
// invariant violations inside the layout engine and are never recovered
// into partial output.
//
// # Usage
//
//	err := errors.NewAt(errors.ErrCodeUnbalancedBracket, 4, "unmatched ')'")
//	if errors.Is(err, errors.ErrCodeUnbalancedBracket) {
//	    // Handle parse error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "loop radius solve failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structure parsing errors
	ErrCodeUnbalancedBracket Code = "UNBALANCED_BRACKET"
	ErrCodeInvalidCharacter  Code = "INVALID_CHARACTER"
	ErrCodeEmptyStructure    Code = "EMPTY_STRUCTURE"
	ErrCodeEmptyStrand       Code = "EMPTY_STRAND"

	// Styling input errors
	ErrCodeSequenceMismatch Code = "SEQUENCE_MISMATCH"
	ErrCodeProbabilityRange Code = "PROBABILITY_RANGE"

	// General input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeDrawingNotFound Code = "DRAWING_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// NoIndex marks an error with no meaningful source position.
const NoIndex = -1

// Error is a structured error with a code, optional source index, and
// optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Index   int    // Offending source index, or NoIndex
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Index != NoIndex {
		msg = fmt.Sprintf("%s at index %d", e.Message, e.Index)
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

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Index:   NoIndex,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAt creates a new Error carrying the offending source index.
func NewAt(code Code, index int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Index:   index,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Index:   NoIndex,
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

// GetIndex extracts the offending source index from an error.
// Returns NoIndex if the error is not an *Error or carries no position.
func GetIndex(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Index
	}
	return NoIndex
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message (with position) without the code
// prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Index != NoIndex {
			return fmt.Sprintf("%s at index %d", e.Message, e.Index)
		}
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err is an input error (caller mistake) as opposed
// to an internal invariant violation.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnbalancedBracket, ErrCodeInvalidCharacter, ErrCodeEmptyStructure,
		ErrCodeEmptyStrand, ErrCodeSequenceMismatch, ErrCodeProbabilityRange,
		ErrCodeInvalidInput, ErrCodeInvalidFormat:
		return true
	}
	return false
}
