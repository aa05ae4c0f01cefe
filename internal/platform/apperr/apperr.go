// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for the
Sultans' Revenge administration backend.

It provides a rich error type that bridges the gap between low-level
Directory/Storage errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Localization: Messages are resolved per-language by the locale package using the Code.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries or
// identity-provider responses).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "INVALID_CODE", "BLOCKED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Machine-Readable Codes

// Error codes referenced across services, tests, and the locale catalog.
const (
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidCode         = "INVALID_CODE"
	CodeBlocked             = "BLOCKED"
	CodeSuspended           = "SUSPENDED"
	CodeExpired             = "EXPIRED"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeValidation          = "VALIDATION_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeInternal            = "INTERNAL_ERROR"
)

// # Authentication & Activation Errors

// InvalidCredentials creates a 401 [AppError] for failed login attempts.
//
// The message is intentionally generic: it never reveals whether the email
// exists, the password was wrong, or the account is in a special state.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    "Invalid login credentials",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidCode creates a 400 [AppError] for an unknown activation code.
func InvalidCode() *AppError {
	return &AppError{
		Code:       CodeInvalidCode,
		Message:    "Activation code is not valid",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Blocked creates a 403 [AppError] for a blocked activation code.
func Blocked() *AppError {
	return &AppError{
		Code:       CodeBlocked,
		Message:    "This activation code is blocked",
		HTTPStatus: http.StatusForbidden,
	}
}

// Suspended creates a 403 [AppError] for a temporarily suspended activation code.
func Suspended() *AppError {
	return &AppError{
		Code:       CodeSuspended,
		Message:    "This activation code is suspended",
		HTTPStatus: http.StatusForbidden,
	}
}

// Expired creates a 403 [AppError] for an activation code past its end date.
func Expired() *AppError {
	return &AppError{
		Code:       CodeExpired,
		Message:    "This activation code has expired",
		HTTPStatus: http.StatusForbidden,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("War") // Returns "War not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 403 [AppError] for a failed role or ownership check.
//
// # Information Disclosure
//
// Administrative mutation endpoints return this without further detail — the
// caller learns only that the action is not permitted, never why.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// AlreadyExists creates a 409 [AppError] for duplicate-email conflicts.
func AlreadyExists(msg string) *AppError {
	return &AppError{
		Code:       CodeAlreadyExists,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// WeakPassword creates a 400 [AppError] for passwords shorter than 6 characters.
func WeakPassword() *AppError {
	return &AppError{
		Code:       CodeWeakPassword,
		Message:    "Password must be at least 6 characters",
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// UpstreamUnavailable creates a 503 [AppError] for an unreachable or
// unconfigured Identity Provider / License Store.
//
// Operators must be able to distinguish "misconfigured" from a business-logic
// rejection, so this carries its own code rather than folding into INTERNAL_ERROR.
func UpstreamUnavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeUpstreamUnavailable,
		Message:    "Upstream service is unavailable or not configured",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries the given machine-readable code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
