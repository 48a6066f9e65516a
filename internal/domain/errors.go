package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrLocked       = errors.New("file locked")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a folder or file id did not resolve
	NotFoundError struct {
		Message      string
		ResourceType string // "folder" or "file"
		ResourceID   string
	}

	// ValidationError indicates a missing/empty required field or malformed input
	ValidationError struct {
		Message string
	}

	// LockedError indicates a mutation was attempted on an approved or locked file
	LockedError struct {
		Message string
		FileID  string
	}

	// InvalidStateError indicates the operation is not valid in the resource's current state
	InvalidStateError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates the caller's role does not allow the operation
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *LockedError) Error() string       { return e.Message }
func (e *InvalidStateError) Error() string { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *LockedError) StatusCode() int       { return http.StatusLocked }
func (e *InvalidStateError) StatusCode() int { return http.StatusConflict }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Is allows errors.Is() to match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *LockedError) Is(target error) bool       { return target == ErrLocked }
func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewNotFound builds a NotFoundError for the given resource.
func NewNotFound(resourceType, id string) *NotFoundError {
	return &NotFoundError{
		Message:      resourceType + " " + id + " not found",
		ResourceType: resourceType,
		ResourceID:   id,
	}
}

// NewLocked builds a LockedError for the given file.
func NewLocked(fileID string) *LockedError {
	return &LockedError{
		Message: "file " + fileID + " is locked",
		FileID:  fileID,
	}
}
