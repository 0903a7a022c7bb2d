// Package errors provides the service's error taxonomy and its HTTP status mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType is the stable outcome category clients branch on.
type ErrorType string

const (
	// TypeValidation indicates caller-fixable input (HTTP 422)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates an unknown feedback id (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeStorage indicates a persistence failure (HTTP 500)
	TypeStorage ErrorType = "storage"
)

// Kind narrows a validation error to the constraint that failed.
type Kind string

const (
	KindMissingField  Kind = "missing_field"
	KindInvalidEnum   Kind = "invalid_enum"
	KindOutOfRange    Kind = "out_of_range"
	KindMalformedBody Kind = "malformed_body"
)

// Error is a structured error carrying enough detail to build a client response.
type Error struct {
	Type    ErrorType
	Kind    Kind
	Message string
	Fields  []string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status code for this error type.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusUnprocessableEntity
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MissingField reports absent required fields.
func MissingField(fields ...string) *Error {
	return &Error{
		Type:    TypeValidation,
		Kind:    KindMissingField,
		Message: fmt.Sprintf("missing required field(s): %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

// InvalidEnum reports a value outside a closed enumeration.
func InvalidEnum(field, value string, allowed []string) *Error {
	return &Error{
		Type:    TypeValidation,
		Kind:    KindInvalidEnum,
		Message: fmt.Sprintf("%s %q is not one of: %s", field, value, strings.Join(allowed, ", ")),
		Fields:  []string{field},
	}
}

// OutOfRange reports a value that is not an integer in [low, high].
func OutOfRange(field string, value any, low, high int) *Error {
	return &Error{
		Type:    TypeValidation,
		Kind:    KindOutOfRange,
		Message: fmt.Sprintf("%s must be an integer between %d and %d, got %v", field, low, high, value),
		Fields:  []string{field},
	}
}

// MalformedBody reports a request body that could not be decoded.
func MalformedBody(cause error) *Error {
	return &Error{
		Type:    TypeValidation,
		Kind:    KindMalformedBody,
		Message: "invalid request body",
		Cause:   cause,
	}
}

func NotFound(message string) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: message,
	}
}

// Storage wraps a persistence-layer failure.
func Storage(message string, cause error) *Error {
	return &Error{
		Type:    TypeStorage,
		Message: message,
		Cause:   cause,
	}
}

// Response is the JSON body sent to clients.
type Response struct {
	Error  string    `json:"error"`
	Type   ErrorType `json:"type"`
	Kind   Kind      `json:"kind,omitempty"`
	Fields []string  `json:"fields,omitempty"`
}

// ToResponse hides the cause; storage failures keep a generic message.
func (e *Error) ToResponse() Response {
	return Response{
		Error:  e.Message,
		Type:   e.Type,
		Kind:   e.Kind,
		Fields: e.Fields,
	}
}

// AsStructuredError converts any error into a structured Error.
// Unknown errors become storage errors, the only unexpected failures the service has.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}
	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}
	return Storage("internal server error", err)
}
