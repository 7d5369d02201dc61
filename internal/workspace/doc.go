// Package workspace prepares a checked-out Rails application for a build:
// it removes stale local state and materializes configuration files from the
// checked-in examples.
package workspace
