// Package apperror defines the error kinds surfaced by the billing core and
// how they map onto HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvariant:
		return "invariant"
	default:
		return "unexpected"
	}
}

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindInvariant:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to API callers.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// With returns a copy of e carrying a more specific message. errors.Is still
// matches the original.
func (e *Error) With(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Message: fmt.Sprintf(format, args...), Err: e}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Validationf(format string, args ...any) *Error {
	return New(KindValidation, fmt.Sprintf(format, args...))
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Invariant(message string) *Error {
	return New(KindInvariant, message)
}

// Unexpected wraps a store or infrastructure failure. Its message never
// includes the underlying error.
func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "internal server error", Err: err}
}

// KindOf classifies err. Anything that is not an *Error is unexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// PublicMessage returns the message that may be shown to a caller.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUnexpected {
		return appErr.Message
	}
	return "internal server error"
}
