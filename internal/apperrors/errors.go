// Package apperrors holds the domain error taxonomy shared by repositories,
// services and handlers. Specific errors wrap one of the base classes so
// callers can match either level with errors.Is.
package apperrors

import (
	"errors"
	"fmt"
)

// Base classes.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
)

// Authentication and authorization errors
var (
	ErrTokenRequired   = fmt.Errorf("token required: %w", ErrUnauthenticated)
	ErrTokenInvalid    = fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	ErrTokenExpired    = fmt.Errorf("token expired: %w", ErrUnauthenticated)
	ErrAccountNotFound = fmt.Errorf("account not registered: %w", ErrNotFound)
	ErrAdminOnly       = fmt.Errorf("admin role required: %w", ErrForbidden)
)

// Resource errors
var (
	ErrInstitutionNotFound = fmt.Errorf("institution: %w", ErrNotFound)
	ErrFacultyNotFound     = fmt.Errorf("faculty: %w", ErrNotFound)
	ErrCourseNotFound      = fmt.Errorf("course: %w", ErrNotFound)
	ErrCompanyNotFound     = fmt.Errorf("company: %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user: %w", ErrNotFound)
	ErrAdmissionNotFound   = fmt.Errorf("admission: %w", ErrNotFound)
)

// Dependency errors
var (
	ErrInstitutionHasFaculties = fmt.Errorf("institution has faculties: %w", ErrConflict)
	ErrFacultyHasCourses       = fmt.Errorf("faculty has courses: %w", ErrConflict)
)

// Validation errors
var (
	ErrEmptyUpdate    = fmt.Errorf("no updatable fields supplied: %w", ErrValidation)
	ErrNoAdmissionIDs = fmt.Errorf("no admission ids provided: %w", ErrValidation)
	ErrTooManyIDs     = fmt.Errorf("too many admission ids: %w", ErrValidation)
)
