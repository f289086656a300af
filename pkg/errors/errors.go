// Package errors carries the coded errors obst reports to users.
//
// Every failure a user can fix (a blank key, a duplicate, an unknown
// output format, a dataset over the entry limit) is an [*Error] with a
// [Code]. The CLI prints [UserMessage]; the HTTP API answers with
// [HTTPStatus] of the code and a JSON body holding the code and message.
// Errors without a code are internal: the API logs them and answers 500.
//
// Codes name the thing that was wrong, not where it was detected: a
// frequency of NaN is INVALID_FREQUENCY whether it came from a TOML file,
// a key=freq argument or a request body.
//
//	if err := errors.ValidateFrequency("eat", f); err != nil {
//	    return err // INVALID_FREQUENCY
//	}
//
//	_, err := os.Open(path)
//	return errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidVizType   Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidFrequency Code = "INVALID_FREQUENCY"
	ErrCodeInvalidKey       Code = "INVALID_KEY"
	ErrCodeInvalidLocale    Code = "INVALID_LOCALE"
	ErrCodeDuplicateKey     Code = "DUPLICATE_KEY"
	ErrCodeEmptyDataset     Code = "EMPTY_DATASET"
	ErrCodeTooManyEntries   Code = "TOO_MANY_ENTRIES"
	ErrCodeRequestTooLarge  Code = "REQUEST_TOO_LARGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message to show a user: the message of the first
// *Error in the chain without its code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
