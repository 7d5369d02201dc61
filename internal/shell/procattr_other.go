//go:build !unix

package shell

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; only sh
// itself is killed on cancellation.
func setProcessGroup(_ *exec.Cmd) {}
