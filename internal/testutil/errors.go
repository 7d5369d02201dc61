// Package testutil provides testing utilities for railsci.
//
// This package contains mock errors, a mock command runner and a fake clock
// used across test files. It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockCommandNotConfigured is returned by MockRunner for a command line
	// that has no registered response.
	ErrMockCommandNotConfigured = errors.New("command not configured")

	// ErrMockToolMissing simulates a tool that could not be started.
	ErrMockToolMissing = errors.New("executable file not found")
)
