//go:build !unix

package flock

// Exclusive always fails with ErrUnsupported.
func Exclusive(_ uintptr) error {
	return ErrUnsupported
}

// Unlock always fails with ErrUnsupported.
func Unlock(_ uintptr) error {
	return ErrUnsupported
}
