package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindDuplicateKey       Kind = "duplicate_key"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindAlreadyApproved    Kind = "already_approved"
	KindTooManyRequests    Kind = "too_many_requests"
	KindInternal           Kind = "internal"
)

// InvalidCredentialsMessage is shared by every login failure so that an
// unknown email and a wrong password produce byte-identical bodies.
const InvalidCredentialsMessage = "Invalid email or password"

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error carrying a short diagnostic string.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Duplicate(message string) *AppError {
	return New(http.StatusBadRequest, KindDuplicateKey, message, nil)
}

func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, KindInvalidCredentials, InvalidCredentialsMessage, nil)
}

func Unauthenticated(message string, err error) *AppError {
	return New(http.StatusUnauthorized, KindUnauthenticated, message, err)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func AlreadyApproved(message string) *AppError {
	return New(http.StatusBadRequest, KindAlreadyApproved, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

// Internal hides err from the client. details should be a short, static
// diagnostic such as "failed to hash password".
func Internal(details string, err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err).WithDetails(details)
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
