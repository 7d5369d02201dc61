//go:build !unix

package flock_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/railsci/internal/flock"
)

func TestAcquire_Unsupported(t *testing.T) {
	t.Parallel()

	lock, err := flock.Acquire(filepath.Join(t.TempDir(), "cache.lock"))
	require.ErrorIs(t, err, flock.ErrUnsupported)
	assert.Nil(t, lock)
}
