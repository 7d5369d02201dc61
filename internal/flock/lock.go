package flock

import (
	"errors"
	"fmt"
	"os"
)

// ErrUnsupported is returned by Acquire on platforms without flock(2).
var ErrUnsupported = errors.New("file locking requires a unix platform")

// Lock is an exclusive lock held on a lock file.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and takes an
// exclusive non-blocking lock on it.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- lock path is built from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	return &Lock{file: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.file.Name()
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := Unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}
