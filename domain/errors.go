package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared by the client and the server.
type ErrorCode string

const (
	// Client-side classifications.
	ErrCodeTransport   ErrorCode = "TRANSPORT"
	ErrCodeDecode      ErrorCode = "DECODE"
	ErrCodeValidation  ErrorCode = "VALIDATION"
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
	ErrCodeStatus      ErrorCode = "STATUS"

	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	// Status is the HTTP status that produced the error, when there was one.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error with the same code and message, so sentinel
// errors keep working with errors.Is after being copied or wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// StatusError reports a non-successful HTTP status.
func StatusError(status int, message string) *Error {
	code := ErrCodeStatus
	if status == 401 || status == 403 {
		code = ErrCodeUnauthorized
	}
	return &Error{Code: code, Message: message, Status: status}
}

// Common domain errors.
var (
	ErrUserNotFound    = NewError(ErrCodeNotFound, "user not found")
	ErrUserExists      = NewError(ErrCodeConflict, "user already exists")
	ErrTaskNotFound    = NewError(ErrCodeNotFound, "task not found")
	ErrSessionNotFound = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrNotLoggedIn     = NewError(ErrCodeUnauthorized, "not logged in")
	ErrBadCredentials  = NewError(ErrCodeUnauthorized, "invalid email or password")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
	ErrNoTasks         = NewError(ErrCodeEmptyResult, "no data available")
	ErrEmptyBody       = NewError(ErrCodeDecode, "empty response body")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the classification of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ErrCodeInternal
}
