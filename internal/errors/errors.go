// Package errors provides centralized error handling for railsci.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrCommandFailed indicates that an external build tool exited non-zero.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandTimeout indicates that an external build tool exceeded the
	// configured command timeout.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrUnrecognizedSCM indicates the workspace is neither a git nor a
	// Subversion checkout, so no artifact name can be computed.
	ErrUnrecognizedSCM = errors.New("unrecognized source-control system")

	// ErrBranchUnknown indicates a git workspace whose branch could not be determined.
	ErrBranchUnknown = errors.New("git branch unknown")

	// ErrSVNURLMissing indicates a Subversion workspace without a source URL.
	ErrSVNURLMissing = errors.New("subversion url missing")

	// ErrMissingAppName indicates the application name argument was not supplied.
	ErrMissingAppName = errors.New("application name is required")

	// ErrTooManyArgs indicates extra positional arguments after the
	// application name.
	ErrTooManyArgs = errors.New("too many arguments")

	// ErrMissingWorkspace indicates the workspace path is unset.
	ErrMissingWorkspace = errors.New("workspace path is required")

	// ErrMissingHome indicates the home directory is unset.
	ErrMissingHome = errors.New("home directory is required")

	// ErrWorkspaceNotFound indicates the workspace path does not exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrCacheLocked indicates another build holds the persistent asset cache.
	ErrCacheLocked = errors.New("asset cache is locked")

	// ErrArchiveMissing indicates the packaging tool did not produce the expected archive.
	ErrArchiveMissing = errors.New("packaged archive not found")

	// ErrTemplateCopy indicates an example configuration file could not be materialized.
	ErrTemplateCopy = errors.New("template copy failed")
)

// ExitError carries the exit status of a failed external command so that the
// entry point can terminate with the same code.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

// NewExitError wraps err with the exit code of the command that produced it.
func NewExitError(command string, code int, err error) *ExitError {
	return &ExitError{Command: command, Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (exit status %d): %v", e.Command, e.Code, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code carried by err and whether one was found.
func ExitCodeOf(err error) (int, bool) {
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
