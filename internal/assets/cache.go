// Package assets keeps compiled Rails assets between builds.
//
// Every build starts from a fresh checkout, so the workspace's tmp directory
// (where sprockets keeps its cache) is replaced with a symlink into a
// per-job directory under the home directory that survives the checkout.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/config"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
	"github.com/mrz1836/railsci/internal/flock"
)

// Cache describes the persistent asset cache of one job.
type Cache struct {
	// Target is the persistent directory, <home>/tmp/<job>.
	Target string
	// Link is the workspace directory replaced by a symlink to Target.
	Link string
}

// NewCache returns the cache layout for job.
func NewCache(workspace, home, job string) Cache {
	return Cache{
		Target: config.PersistentCachePath(home, job),
		Link:   filepath.Join(workspace, constants.AssetCacheDir),
	}
}

// LockPath returns the lock file guarding Target.
func (c Cache) LockPath() string {
	return c.Target + constants.CacheLockSuffix
}

// Setup creates Target if needed and replaces Link with a symlink to it,
// removing whatever link or directory was there before. The relink happens
// under an exclusive lock; if another build holds it, Setup fails with
// ErrCacheLocked instead of waiting.
func (c Cache) Setup(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	if err := os.MkdirAll(c.Target, 0o750); err != nil {
		return fmt.Errorf("failed to create asset cache %s: %w", c.Target, err)
	}

	lock, err := flock.Acquire(c.LockPath())
	if err != nil {
		return errors.Wrap(errors.ErrCacheLocked, err.Error())
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			log.Warn().Err(releaseErr).Str("lock", c.LockPath()).Msg("failed to release asset cache lock")
		}
	}()

	if _, err := os.Lstat(c.Link); err == nil {
		if err := os.RemoveAll(c.Link); err != nil {
			return fmt.Errorf("failed to remove %s: %w", c.Link, err)
		}
	}

	if err := os.Symlink(c.Target, c.Link); err != nil {
		return fmt.Errorf("failed to link %s to %s: %w", c.Link, c.Target, err)
	}

	log.Info().Str("link", c.Link).Str("target", c.Target).Msg("linked asset cache")
	return nil
}
