package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the single transport-level translation
// in FromError. Services return *AppError (or wrap the sentinels below);
// controllers never pick HTTP status codes themselves.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a persistence or unexpected failure. Its cause is logged
// but never echoed to the client.
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

var (
	ErrUserNotFound       = NotFoundError("user not found")
	ErrStudentNotFound    = NotFoundError("student not found")
	ErrAssignmentNotFound = NotFoundError("assignment not found")
	ErrQuizNotFound       = NotFoundError("quiz not found")
	ErrSubmissionNotFound = NotFoundError("submission not found")
	ErrEmailRegistered    = Conflict("user with this email already exists")
	ErrInvalidCredentials = Unauthenticated("invalid credentials")
	ErrPermissionDenied   = &AppError{Kind: KindForbidden, Message: "permission denied"}
)

// AsAppError extracts the taxonomy entry from an error chain, defaulting to
// internal for anything untyped.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
