// Package errors provides structured error types for the Omeda client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes name the failure category rather than the call site:
//   - CONFIGURATION: missing identity, brand, client abbreviation or endpoint
//   - UNSUPPORTED_CONTENT_TYPE: a request or response media type other than JSON or text
//   - UNKNOWN_SCHEMA_TYPE: a schema entry with no coercion rule
//   - JSON_PARSE: a response declared as JSON that does not parse
//   - API_RESPONSE / NOT_ACTIVE: non-2xx API outcomes
//   - NETWORK, CACHE: transport and cache collaborator failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "the Omeda brand abbreviation is required")
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "GET %s", url)
//
// Types outside this package participate in [Is] and [GetCode] by
// implementing [Coder].
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Setup errors, raised before any network call
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Wire format errors
	ErrCodeUnsupportedContentType Code = "UNSUPPORTED_CONTENT_TYPE"
	ErrCodeJSONParse              Code = "JSON_PARSE"

	// Schema authoring errors
	ErrCodeUnknownSchemaType Code = "UNKNOWN_SCHEMA_TYPE"

	// API outcome errors
	ErrCodeAPIResponse Code = "API_RESPONSE"
	ErrCodeNotActive   Code = "NOT_ACTIVE"

	// Collaborator errors
	ErrCodeNetwork Code = "NETWORK"
	ErrCodeCache   Code = "CACHE_ERROR"
)

// Coder is implemented by errors that carry a [Code].
type Coder interface {
	Code() Code
}

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
// The outermost coded error in the chain decides.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case Coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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

// JSONParseError is returned when a response declares a JSON content type
// but its body does not parse. The raw body is kept for diagnostics.
type JSONParseError struct {
	Body  string // Raw response body
	Cause error  // Underlying decoder error
}

// Error implements the error interface.
func (e *JSONParseError) Error() string {
	return fmt.Sprintf("unable to parse JSON response body: %v", e.Cause)
}

// Unwrap returns the decoder error.
func (e *JSONParseError) Unwrap() error { return e.Cause }

// Code returns the error code for this error type.
func (e *JSONParseError) Code() Code {
	return ErrCodeJSONParse
}
