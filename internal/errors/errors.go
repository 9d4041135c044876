// Package errors provides error types and handling for the actifly beta API.
// It includes custom error types with HTTP status codes and error codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with an associated HTTP status code.
type AppError struct {
	// Code is a machine-readable error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// StatusCode is the HTTP status code to return
	StatusCode int
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	// Client error codes.
	ErrCodeMissingFields   = "missing_fields"
	ErrCodeInvalidEmail    = "invalid_email"
	ErrCodeInvalidCategory = "invalid_category"
	ErrCodeConsentRequired = "consent_required"
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeRegistryFull    = "registry_full"
	ErrCodeUnauthorized    = "unauthorized"

	// Server error codes.
	ErrCodeMisconfiguration   = "misconfiguration"
	ErrCodeUpstreamFailure    = "upstream_failure"
	ErrCodeContentionExceeded = "contention_exceeded"
	ErrCodeDatabaseError      = "database_error"
	ErrCodeInternalError      = "internal_error"
)

// NewClientError creates a new client error (4xx status codes).
func NewClientError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 400 || statusCode >= 500 {
		panic(fmt.Sprintf("NewClientError called with non-client status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewServerError creates a new server error (5xx status codes).
func NewServerError(statusCode int, code, message string, cause error) *AppError {
	if statusCode < 500 || statusCode >= 600 {
		panic(fmt.Sprintf("NewServerError called with non-server status code: %d", statusCode))
	}
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// Convenience constructors for common errors

// ErrMissingFields creates a missing required fields error (400).
func ErrMissingFields() *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeMissingFields, "Missing required fields", nil)
}

// ErrInvalidEmail creates an invalid email error (400).
func ErrInvalidEmail() *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeInvalidEmail, "Invalid email", nil)
}

// ErrInvalidCategory creates an invalid category error (400).
func ErrInvalidCategory() *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeInvalidCategory, "Invalid category", nil)
}

// ErrConsentRequired creates a consent required error (400).
func ErrConsentRequired() *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeConsentRequired, "Consent is required", nil)
}

// ErrBadRequest creates a generic bad request error (400).
func ErrBadRequest(message string, cause error) *AppError {
	return NewClientError(http.StatusBadRequest, ErrCodeInvalidRequest, message, cause)
}

// ErrRegistryFull creates a capacity-reached error (409).
func ErrRegistryFull() *AppError {
	return NewClientError(http.StatusConflict, ErrCodeRegistryFull, "Beta list is full", nil)
}

// ErrUnauthorized creates an unauthorized error (401).
func ErrUnauthorized(message string, cause error) *AppError {
	return NewClientError(http.StatusUnauthorized, ErrCodeUnauthorized, message, cause)
}

// ErrMisconfiguration creates a missing-dependency error (500).
// Used when a required external dependency (store, admin token, mail key)
// is absent; the request must fail, never silently continue.
func ErrMisconfiguration(message string) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeMisconfiguration, message, nil)
}

// ErrUpstreamFailure creates an upstream service failure error (502).
// The upstream response body is carried in the cause for diagnostics.
func ErrUpstreamFailure(message string, cause error) *AppError {
	return NewServerError(http.StatusBadGateway, ErrCodeUpstreamFailure, message, cause)
}

// ErrContentionExceeded creates an error for an exhausted optimistic retry loop (503).
func ErrContentionExceeded(message string) *AppError {
	return NewServerError(http.StatusServiceUnavailable, ErrCodeContentionExceeded, message, nil)
}

// ErrDatabaseError creates a database error (503 Service Unavailable).
// Database failures are typically transient issues.
func ErrDatabaseError(message string, cause error) *AppError {
	return NewServerError(http.StatusServiceUnavailable, ErrCodeDatabaseError, message, cause)
}

// ErrInternalError creates an internal server error (500).
func ErrInternalError(message string, cause error) *AppError {
	return NewServerError(http.StatusInternalServerError, ErrCodeInternalError, message, cause)
}

// GetStatusCode extracts the HTTP status code from an error.
// Returns 500 if the error is not an AppError.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
