// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy surfaced to API callers.
//
// Every handler converts failures into one of these kinds so the HTTP layer
// can map them to a status code and the standard error envelope. Storage
// errors that are not translated explicitly surface as Internal.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for HTTP translation.
type Kind int

const (
	// Internal is an unexpected failure (500).
	Internal Kind = iota
	// Validation is missing or invalid input (400).
	Validation
	// Authentication is bad credentials or an expired/reused token (401).
	Authentication
	// Permission means the caller's role is insufficient (403).
	Permission
	// NotFound means the resource is absent (404).
	NotFound
)

// Error carries a kind, a caller-facing message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the kind to its HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Permission:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New constructs an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error that records an underlying cause. The cause is
// logged server-side but never included in the response body.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// From returns err as *Error, wrapping unknown errors as Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: Internal, Message: "internal server error", Err: err}
}
