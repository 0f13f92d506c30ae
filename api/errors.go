// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-vec.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrCapacityOverflow  = errors.New("capacity overflow")
	ErrAllocFailed       = errors.New("memory allocation failed")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrZeroSizeGrow      = errors.New("grow called for zero-size element type")
	ErrMovedFrom         = errors.New("use of moved container")
	ErrBorrowed          = errors.New("container is borrowed by a live drain")
	ErrUnsupportedLayout = errors.New("layout not supported by allocator")
	ErrNotSupported      = errors.New("operation not supported")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeCapacityOverflow
	ErrCodeAllocFailed
	ErrCodeIndexOutOfBounds
	ErrCodeZeroSizeGrow
	ErrCodeMovedFrom
	ErrCodeBorrowed
	ErrCodeUnsupportedLayout
	ErrCodeNotSupported
	ErrCodeInternal
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeCapacityOverflow:  ErrCapacityOverflow,
	ErrCodeAllocFailed:       ErrAllocFailed,
	ErrCodeIndexOutOfBounds:  ErrIndexOutOfBounds,
	ErrCodeZeroSizeGrow:      ErrZeroSizeGrow,
	ErrCodeMovedFrom:         ErrMovedFrom,
	ErrCodeBorrowed:          ErrBorrowed,
	ErrCodeUnsupportedLayout: ErrUnsupportedLayout,
	ErrCodeNotSupported:      ErrNotSupported,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Is matches the sentinel value for the error code.
func (e *Error) Is(target error) bool {
	s, ok := codeSentinels[e.Code]
	return ok && s == target
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause records the error that triggered e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Fatal aborts the current operation with a structured error. Fatal
// conditions are never returned as values: an unrecovered panic ends the
// process.
func Fatal(e *Error) {
	panic(e)
}

// CodeOf extracts the ErrorCode from a recovered panic value or error.
func CodeOf(v any) ErrorCode {
	var e *Error
	if err, ok := v.(error); ok && errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOK
}
