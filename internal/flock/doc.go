// Package flock provides advisory file locking on Unix systems using flock(2).
// On other platforms Acquire fails with ErrUnsupported.
//
// railsci uses it to guard the persistent asset cache, which is shared by every
// build of the same job running under one home directory. Locks are exclusive
// and non-blocking: a second build fails fast instead of waiting.
//
// Usage:
//
//	lock, err := flock.Acquire(path + ".lock")
//	if err != nil {
//	    // Lock not acquired - another build holds the cache
//	}
//	defer lock.Release()
package flock
