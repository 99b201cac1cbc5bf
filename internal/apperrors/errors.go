package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrLookupFailed indicates that the product catalog could not resolve a product's name and price.
var ErrLookupFailed = errors.New("product lookup failed")

// ErrSuperseded indicates that a debounced search was replaced by a newer one before it ran.
var ErrSuperseded = errors.New("search superseded by a newer request")

// ErrSessionClosed indicates that an operation was sent to a form session that is no longer running.
var ErrSessionClosed = errors.New("form session closed")

// AppError is an error that carries the HTTP status it should be reported with.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// NewAppError wraps err with an HTTP status code and a client-safe message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
