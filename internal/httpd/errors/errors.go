package errors

import (
	"fmt"
	"net/http"
)

// AppError is an application error with HTTP metadata.
type AppError struct {
	// Code is a stable machine-readable error code
	Code string `json:"code"`
	// Message is the human-readable error message
	Message string `json:"message"`
	// Status is the HTTP status code
	Status int `json:"-"`
	// Internal is the underlying error, never serialized
	Internal error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// ErrorResponse is the JSON body sent for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func New(code string, message string, status int, internal error) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Status:   status,
		Internal: internal,
	}
}

func BadRequest(message string, internal error) *AppError {
	return New("bad_request", message, http.StatusBadRequest, internal)
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return New("unauthorized", message, http.StatusUnauthorized, nil)
}

func Conflict(code string, message string) *AppError {
	return New(code, message, http.StatusConflict, nil)
}

func Internal(message string, internal error) *AppError {
	return New("internal_error", message, http.StatusInternalServerError, internal)
}
