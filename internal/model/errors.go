package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeTokenExpired ErrorCode = 1002
	ErrCodeTokenInvalid ErrorCode = 1003
	ErrCodeLoginFailed  ErrorCode = 1004

	// Authorization errors (2xxx)
	ErrCodeForbidden ErrorCode = 2001

	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002

	// Internal errors (5xxx)
	ErrCodeInternal  ErrorCode = 5001
	ErrCodeDatabase  ErrorCode = 5002
	ErrCodeIntegrity ErrorCode = 5003
)

// APIError is the uniform JSON error body returned by every endpoint.
type APIError struct {
	Message    string       `json:"message"`
	StatusCode int          `json:"status_code"`
	Code       ErrorCode    `json:"code,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Code:       ErrCodeUnauthorized,
	}
}

// NewTokenError is a 401 for a bearer token that was present but rejected.
func NewTokenError(code ErrorCode, message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Code:       code,
	}
}

func NewLoginFailedError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Code:       ErrCodeLoginFailed,
	}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusForbidden,
		Code:       ErrCodeForbidden,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
	}
}

// NewValidationError builds a 400 response listing every failed field.
func NewValidationError(errors []FieldError) *APIError {
	message := "one or more fields failed validation"
	if len(errors) > 0 {
		message = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			message = fmt.Sprintf("%s (and %d more errors)", message, len(errors)-1)
		}
	}
	return &APIError{
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeValidation,
		Errors:     errors,
	}
}

func NewConflictError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusConflict,
		Code:       ErrCodeConflict,
	}
}

func NewIntegrityError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeIntegrity,
	}
}

func NewDatabaseError() *APIError {
	return &APIError{
		Message:    "a database error occurred",
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeDatabase,
	}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &APIError{
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeInternal,
	}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeInvalidInput,
	}
}

func NewMethodNotAllowedError(method string) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("method %s not allowed", method),
		StatusCode: http.StatusMethodNotAllowed,
		Code:       ErrCodeInvalidInput,
	}
}
