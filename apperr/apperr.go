// Package apperr classifies every failure the handlers can surface so the
// HTTP layer can map them to a status code and envelope in one place.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInvariant
	KindStore
)

type Error struct {
	Kind    Kind
	Field   string // set for validation failures
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation reports a missing or malformed caller-supplied field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Invariant(message string) *Error {
	return &Error{Kind: KindInvariant, Message: message}
}

// Store wraps a persistence failure. The cause is for server logs only and
// never reaches the caller.
func Store(cause error) *Error {
	return &Error{Kind: KindStore, Message: "something went wrong, please try again", cause: cause}
}

// KindOf extracts the classification of err, KindUnknown if it carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}
