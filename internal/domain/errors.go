package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags a domain error so callers and the transport layer can
// branch on the category without parsing messages.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "NotFound"
	KindUnauthorized   ErrorKind = "Unauthorized"
	KindInvalidPayload ErrorKind = "InvalidPayload"
	KindInvalidInput   ErrorKind = "InvalidInput"
	KindForbidden      ErrorKind = "Forbidden"
)

// Error is the tagged error every operation returns on failure. Operations
// are total: an absent record is a normal NotFound error, not a panic.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same kind, so
// errors.Is(err, domain.ErrNotFound) works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel values for errors.Is checks.
var (
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrInvalidPayload = &Error{Kind: KindInvalidPayload, Message: "invalid payload"}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrForbidden      = &Error{Kind: KindForbidden, Message: "forbidden"}
)

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf builds an Unauthorized error with a formatted message.
func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// InvalidPayloadf builds an InvalidPayload error with a formatted message.
func InvalidPayloadf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidPayload, Message: fmt.Sprintf(format, args...)}
}

// InvalidInputf builds an InvalidInput error with a formatted message.
func InvalidInputf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds a Forbidden error with a formatted message.
func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain, or "" for non-domain errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
