package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error. The HTTP layer maps each kind to a
// single status code.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindForbidden        ErrorKind = "FORBIDDEN"
	KindValidationFailed ErrorKind = "VALIDATION_FAILED"
	KindConflict         ErrorKind = "CONFLICT"
	KindInternal         ErrorKind = "INTERNAL"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same kind and code.
// This lets errors.Is(err, shared.ErrNotFound) match any not-found error
// carrying the generic code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WithCause returns a copy of the error wrapping cause
func (e *DomainError) WithCause(cause error) *DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

// NotFound builds a not-found error for the named resource
func NotFound(resource string) *DomainError {
	return NewDomainError(KindNotFound, "NOT_FOUND", resource+" not found")
}

// Validation builds a validation error with a specific code
func Validation(code, format string, args ...any) *DomainError {
	return NewDomainError(KindValidationFailed, code, fmt.Sprintf(format, args...))
}

// Conflict builds a conflict error with a specific code
func Conflict(code, format string, args ...any) *DomainError {
	return NewDomainError(KindConflict, code, fmt.Sprintf(format, args...))
}

// Forbidden builds a forbidden error with a specific code
func Forbidden(code, message string) *DomainError {
	return NewDomainError(KindForbidden, code, message)
}

// Internal wraps an unexpected failure
func Internal(message string, cause error) *DomainError {
	return NewDomainError(KindInternal, "INTERNAL_ERROR", message).WithCause(cause)
}

// KindOf returns the kind of err, or KindInternal when err is not a DomainError
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a DomainError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError(KindConflict, "ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError(KindValidationFailed, "INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError(KindUnauthorized, "UNAUTHORIZED", "Authentication required")
	ErrForbidden        = NewDomainError(KindForbidden, "FORBIDDEN", "Access to this resource is forbidden")
	ErrFeatureDisabled  = NewDomainError(KindForbidden, "FEATURE_DISABLED", "Feature is not enabled for this organization")
	ErrTenantMismatch   = NewDomainError(KindForbidden, "TENANT_MISMATCH", "Resource belongs to another organization")
	ErrInvalidReference = NewDomainError(KindValidationFailed, "INVALID_REFERENCE", "Referenced resource does not exist")
)
