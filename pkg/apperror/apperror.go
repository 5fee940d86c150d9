package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a unique error code
type Code int

const (
	CodeNotFound Code = iota + 1000
	CodeBadRequest
	CodeUnauthorized
	CodeForbidden
	CodeConflict
	CodeInternal
)

// Error is an application error carrying a code the HTTP layer can map
// to a status.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status. Consumed by the
// error middleware.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func BadRequest(message string, err error) *Error {
	return &Error{Code: CodeBadRequest, Message: message, Err: err}
}

func Unauthorized(message string, err error) *Error {
	return &Error{Code: CodeUnauthorized, Message: message, Err: err}
}

func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func Conflict(message string, err error) *Error {
	return &Error{Code: CodeConflict, Message: message, Err: err}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFound error.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeNotFound
}
