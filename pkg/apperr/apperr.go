package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error into the coarse categories the HTTP layer maps
// onto status codes. Usecases attach kinds; delivery only switches on them.
type Kind int

const (
	KindInternal Kind = iota
	KindAlreadyExists
	KindUnauthenticated
	KindPermissionDenied
	KindNotFound
	KindInvalidArgument
	KindInvalidToken
)

func (k Kind) String() string {
	switch k {
	case KindAlreadyExists:
		return "already_exists"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindInvalidToken:
		return "invalid_token"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response status. Token errors surface as
// plain unauthenticated so the failure mode is not leaked to the caller.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAlreadyExists:
		return http.StatusConflict
	case KindUnauthenticated, KindInvalidToken:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is the one error type that crosses layer boundaries.
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func AlreadyExists(message string) *Error {
	return New(KindAlreadyExists, message)
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

func PermissionDenied(message string) *Error {
	return New(KindPermissionDenied, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}

// InvalidToken wraps a token-validation failure. The cause stays inside
// the chain for logs; the outward message is always the same.
func InvalidToken(err error) *Error {
	return Wrap(KindInvalidToken, "invalid_token", err)
}

func Internal(err error) *Error {
	return Wrap(KindInternal, "internal_error", err)
}

// KindOf extracts the kind from anywhere in the chain, defaulting to
// internal for errors that never got classified.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AsUnauthenticated rewrites token-validation failures as the generic
// unauthenticated error; any other kind passes through untouched.
func AsUnauthenticated(err error) error {
	if IsKind(err, KindInvalidToken) {
		return Unauthenticated("invalid_token")
	}
	return err
}
