package domain

import (
	"errors"
	"fmt"
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
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Authentication failures. All of them match ErrUnauthorized.
var (
	ErrTokenExpired = fmt.Errorf("%w: token has expired", ErrUnauthorized)
	ErrInvalidToken = fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
)

// Authorization failures. All of them match ErrForbidden.
var (
	ErrNotMember         = fmt.Errorf("%w: not a workspace member", ErrForbidden)
	ErrNotTeamMember     = fmt.Errorf("%w: not a team member", ErrForbidden)
	ErrInsufficientRole  = fmt.Errorf("%w: insufficient permissions", ErrForbidden)
	ErrOwnerGrantDenied  = fmt.Errorf("%w: only an owner can assign the owner role", ErrForbidden)
	ErrOwnerChangeDenied = fmt.Errorf("%w: only an owner can modify or remove an owner", ErrForbidden)
)

// ErrLastOwner rejects any change that would leave a workspace without an owner.
var ErrLastOwner = fmt.Errorf("%w: workspace must keep at least one owner", ErrConflict)

// Blob layer failures. These surface as server errors.
var (
	ErrStorage          = errors.New("storage error")
	ErrStorageMissing   = fmt.Errorf("%w: stored file missing", ErrStorage)
	ErrDecryptionFailed = fmt.Errorf("%w: decryption failed", ErrStorage)
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (media, member, user, ...)
	ResourceID   string // ID of the existing/conflicting resource, empty when unknown
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

// StatusCode maps a domain error onto an HTTP status code.
// Unknown errors map to 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
