// Package errors provides typed domain errors for the porte pipeline.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMalformedRule indicates an invalid tariff rule row; fatal to table load
	TypeMalformedRule Type = "MALFORMED_RULE"

	// TypeMalformedRecord indicates an invalid route row; skips that record only
	TypeMalformedRecord Type = "MALFORMED_RECORD"

	// TypeNegativeCharge indicates a computed charge below zero
	TypeNegativeCharge Type = "NEGATIVE_CHARGE"

	// TypeSourceUnavailable indicates an input source could not be read
	TypeSourceUnavailable Type = "SOURCE_UNAVAILABLE"

	// TypeMalformedTable indicates a table source that could not be parsed
	TypeMalformedTable Type = "MALFORMED_TABLE"

	// TypeDestinationUnavailable indicates an output destination could not be written
	TypeDestinationUnavailable Type = "DESTINATION_UNAVAILABLE"

	// TypePermission indicates the destination rejected the service identity
	TypePermission Type = "PERMISSION_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// MalformedRule creates a malformed tariff rule error
func MalformedRule(message string) *Error {
	return New(TypeMalformedRule, message)
}

// MalformedRecord creates a malformed route record error
func MalformedRecord(message string) *Error {
	return New(TypeMalformedRecord, message)
}

// SourceUnavailable creates a source unavailability error
func SourceUnavailable(source string, cause error) *Error {
	return Wrapf(TypeSourceUnavailable, cause, "source unavailable: %s", source)
}

// DestinationUnavailable creates a destination unavailability error
func DestinationUnavailable(destination string, cause error) *Error {
	return Wrapf(TypeDestinationUnavailable, cause, "destination unavailable: %s", destination)
}

// Permission creates a permission error
func Permission(message string, cause error) *Error {
	return Wrap(TypePermission, message, cause)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
