package models

import "github.com/pkg/errors"

// Error categories surfaced to API callers. Wrap these with context and
// classify with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// NotFoundf returns an ErrNotFound wrapped with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// Conflictf returns an ErrConflict wrapped with a formatted message
func Conflictf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConflict, format, args...)
}

// Forbiddenf returns an ErrForbidden wrapped with a formatted message
func Forbiddenf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrForbidden, format, args...)
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err refers to a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a rejected state change
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized reports whether err is a failed or missing authentication
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether err is an authenticated caller acting on someone else's data
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
