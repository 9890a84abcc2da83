package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The HTTP layer maps each kind to a
// status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
	KindBadRequest
	KindUpstream
	KindTokenIssuance
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUpstream:
		return "upstream"
	case KindTokenIssuance:
		return "token_issuance"
	default:
		return "unknown"
	}
}

// Error is a typed service failure. Message is safe to show to callers,
// Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrUnauthorized)
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels for errors.Is checks.
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrBadRequest    = &Error{Kind: KindBadRequest}
	ErrUpstream      = &Error{Kind: KindUpstream}
	ErrTokenIssuance = &Error{Kind: KindTokenIssuance}
)

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func validationError(msg string) error { return newError(KindValidation, msg, nil) }
func conflictError(msg string) error   { return newError(KindConflict, msg, nil) }
func notFoundError(msg string) error   { return newError(KindNotFound, msg, nil) }
func badRequestError(msg string) error { return newError(KindBadRequest, msg, nil) }

func unauthorizedError(msg string, cause error) error {
	return newError(KindUnauthorized, msg, cause)
}

func upstreamError(msg string, cause error) error {
	return newError(KindUpstream, msg, cause)
}

func tokenIssuanceError(cause error) error {
	return newError(KindTokenIssuance, "failed to create access and refresh token", cause)
}
