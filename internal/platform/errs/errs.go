// Package errs defines the error taxonomy shared by the gateway, the AI
// adapter, and the HTTP handlers. Upstream errors are normalized into one
// of these kinds before they reach a handler; handlers map kinds to HTTP
// statuses and never inspect raw backend error codes.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for retry and presentation decisions.
type Kind int

const (
	// KindUnknown is the zero value; treated as transient for safety.
	KindUnknown Kind = iota
	// KindConfiguration marks missing or malformed configuration. Fatal at
	// startup, feature-disabling at runtime.
	KindConfiguration
	// KindValidation marks user-correctable input errors.
	KindValidation
	// KindNotFound marks a missing record. Never retried.
	KindNotFound
	// KindConflict marks a unique-constraint violation. Never retried.
	KindConflict
	// KindTransient marks a retryable backend failure.
	KindTransient
	// KindRateLimit marks a fail-closed rate limiter rejection.
	KindRateLimit
	// KindUpstreamAI marks a generative-AI call failure.
	KindUpstreamAI
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	case KindRateLimit:
		return "rate_limit"
	case KindUpstreamAI:
		return "upstream_ai"
	default:
		return "unknown"
	}
}

// Error is a classified error carrying the operation label that produced it.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error with a message.
func E(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap builds an Error around an underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, unwrapping as needed. Unclassified errors
// report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is classified as not-found.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is classified as a conflict.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is classified as a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsRetryable reports whether the gateway may retry the operation.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindConflict, KindValidation, KindConfiguration, KindRateLimit:
		return false
	default:
		return true
	}
}

// HTTPStatus maps an error kind to the HTTP status surfaced to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindConfiguration:
		return http.StatusServiceUnavailable
	case KindTransient, KindUpstreamAI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
