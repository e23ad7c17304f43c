// Package apperr defines the error kinds services return and handlers map to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindInvalidArgument     Kind = "INVALID_ARGUMENT"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
	KindConflict            Kind = "CONFLICT"
	KindInsufficientCredits Kind = "INSUFFICIENT_CREDITS"
	KindMaxDepthExceeded    Kind = "MAX_DEPTH_EXCEEDED"
	KindInternal            Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InsufficientCredits() *Error {
	return &Error{Kind: KindInsufficientCredits, Message: "Insufficient credits"}
}

func MaxDepthExceeded(max int) *Error {
	return &Error{Kind: KindMaxDepthExceeded, Message: fmt.Sprintf("Maximum reply depth of %d reached", max)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err, or KindInternal for errors that did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
