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

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, detected locally before
	// any external call is made
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ResolutionError indicates the guideline resolver could not produce
	// a profile for the requested journal name or URL
	ResolutionError struct {
		Message string
	}

	// TransformError indicates the transform service failed or timed out.
	// Fatal to the submission attempt only; the uploaded document and
	// guideline selection survive for resubmission.
	TransformError struct {
		Message string
	}

	// PersistenceError indicates a save to the persistence gateway failed.
	// The edit session is never discarded on this error, so retry is
	// always possible.
	PersistenceError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ResolutionError) Error() string   { return e.Message }
func (e *TransformError) Error() string    { return e.Message }
func (e *PersistenceError) Error() string  { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ResolutionError) StatusCode() int   { return http.StatusBadGateway }
func (e *TransformError) StatusCode() int    { return http.StatusBadGateway }
func (e *PersistenceError) StatusCode() int  { return http.StatusServiceUnavailable }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrResolution   = errors.New("guideline resolution failed")
	ErrTransform    = errors.New("transform failed")
	ErrPersistence  = errors.New("persistence failed")
)

// Is allows errors.Is() to match typed errors against their sentinels.
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ResolutionError) Is(target error) bool   { return target == ErrResolution }
func (e *TransformError) Is(target error) bool    { return target == ErrTransform }
func (e *PersistenceError) Is(target error) bool  { return target == ErrPersistence }
