// Package fail defines the closed failure taxonomy every repository in the
// service reports through. Repository methods never let raw driver errors
// cross their boundary: they classify them into one of the kinds below, and
// handlers map kinds to HTTP responses.
package fail

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies a failure category. The set is closed.
type Kind string

const (
	NotFound       Kind = "not_found"
	Validation     Kind = "validation"
	Conflict       Kind = "conflict"
	Authentication Kind = "authentication"
	Network        Kind = "network"
	Server         Kind = "server"
)

// Error carries a failure kind, a human-readable message and, optionally, the
// underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a failure of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a failure of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error. A nil cause
// returns nil so call sites can wrap unconditionally.
func Wrap(kind Kind, msg string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// FromErr classifies an arbitrary error. Errors that already carry a kind
// keep it; anything else becomes a Server failure wrapping the cause.
func FromErr(msg string, err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Kind: Server, Msg: msg, Err: err}
}

// KindOf reports the kind of err. Errors without a kind classify as Server,
// which mirrors the catch-all conversion at repository boundaries.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Server
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrUnsupported marks operations the service deliberately does not
// implement. Callers receive it instead of a guessed-at behavior.
var ErrUnsupported = New(Server, "operation not supported")

// HTTPStatus maps a failure kind to the HTTP status handlers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Authentication:
		return http.StatusUnauthorized
	case Network:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the short user-facing message for a failure kind.
func Message(err error) string {
	switch KindOf(err) {
	case NotFound:
		return "Resource not found"
	case Validation:
		return "Validation failed"
	case Conflict:
		return "Resource conflict"
	case Authentication:
		return "Authentication required"
	case Network:
		return "Check your connection"
	default:
		return "Something went wrong"
	}
}
