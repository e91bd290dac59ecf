package errors

import (
	"fmt"
)

// Deploy errors
var (
	ErrTarballNotFound     = New("release tarball not found")
	ErrInvalidArchive      = New("invalid release archive")
	ErrMissingRequiredFile = New("required file missing from release")
	ErrBackupFailed        = New("backup failed")
	ErrSyncFailed          = New("sync failed")
	ErrRestartFailed       = New("service restart failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}
