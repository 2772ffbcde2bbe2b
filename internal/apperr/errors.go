package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so handlers can map it to an HTTP
// status without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindInvalidToken
	KindNotFound
	KindConfiguration
)

// Error carries a kind and a client-facing message. The wrapped cause, if
// any, is for logs only and never reaches the response body.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind with an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Validation reports missing or malformed input.
func Validation(message string) *Error { return New(KindValidation, message) }

// Authentication reports bad credentials. The message is deliberately vague
// so callers cannot distinguish an unknown account from a wrong password.
func Authentication(message string) *Error { return New(KindAuthentication, message) }

// InvalidToken reports a bad, replayed, or missing refresh token.
func InvalidToken(message string) *Error { return New(KindInvalidToken, message) }

// NotFound reports a missing resource.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Configuration reports a server misconfiguration, e.g. a missing signing
// secret.
func Configuration(message string) *Error { return New(KindConfiguration, message) }

// KindOf extracts the kind from err, unwrapping as needed. Unclassified
// errors report KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err, or a generic message
// for unclassified errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidToken:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
