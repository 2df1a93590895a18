// Package apperr defines the error kinds that cross the HTTP boundary.
//
// Every error a handler can return to a client is an *Error carrying a
// client-safe message and a status code. Anything else is treated as an
// internal failure and reported with a generic message.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindAuthorization
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a client-facing failure. Err is kept for logs and errors.Is
// checks and is never written to the response.
type Error struct {
	Kind    Kind
	Status  int
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

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, &apperr.Error{Kind: apperr.KindNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: msg}
}

// Unauthenticated rejects a request whose bearer token did not resolve.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: msg}
}

// BadCredentials rejects a login attempt. Same kind as Unauthenticated,
// but the login endpoint answers 400.
func BadCredentials(msg string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusBadRequest, Message: msg}
}

// NotAuthorized rejects an authenticated caller acting on a resource it
// does not own. Clients get 401, the same status as a missing token.
func NotAuthorized(msg string) *Error {
	return &Error{Kind: KindAuthorization, Status: http.StatusUnauthorized, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Wrap attaches cause to e and returns e.
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

// KindOf reports the kind of err, KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Public returns the status and message safe to send to a client.
func Public(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		status := e.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, e.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}
