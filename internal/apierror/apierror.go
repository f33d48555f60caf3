// Package apierror carries the error taxonomy of the registration API.
// Every error that crosses the service boundary is one of these kinds, so the
// HTTP layer can map it to a status code without inspecting internals and
// without leaking storage-layer detail to clients.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	// KindValidation: malformed or missing input; the caller can fix and resubmit.
	KindValidation Kind = iota
	// KindDuplicate: the product code is already registered (case-insensitive).
	KindDuplicate
	// KindDatabase: storage unreachable or an unexpected constraint fired.
	KindDatabase
	// KindInternal: anything unexpected, caught at the boundary.
	KindInternal
)

// Error is the canonical service error. Message is safe to show verbatim to
// end users; anything sensitive stays in the server logs.
type Error struct {
	Kind    Kind
	Message string
	// Err preserves the underlying cause for logging. Never serialized.
	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func Duplicate(msg string) *Error { return &Error{Kind: KindDuplicate, Message: msg} }

func Database(msg string, cause error) *Error {
	return &Error{Kind: KindDatabase, Message: msg, Err: cause}
}

func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps a failure kind to its HTTP status: client-fixable errors are
// 400, everything else is 500.
func Status(k Kind) int {
	switch k {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
