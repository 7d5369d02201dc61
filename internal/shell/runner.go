// Package shell runs the external tools of a build.
//
// SECURITY NOTE: commands come from railsci itself and from the workspace's
// .railsci.yaml, which is committed with the application. They are run through
// sh -c so environment prefixes, redirects and globs behave as in a Jenkins
// shell step.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes to close after the
// command was killed.
const waitDelay = 5 * time.Second

// Runner executes one shell command line.
type Runner interface {
	// Run executes commandLine in workDir and returns its combined stdout and
	// stderr together with the exit code.
	Run(ctx context.Context, workDir, commandLine string) (output string, exitCode int, err error)
}

// DefaultRunner implements Runner with os/exec and sh -c.
type DefaultRunner struct {
	// LiveOut, when set, receives output as it is produced in addition to
	// being captured.
	LiveOut io.Writer
}

// Run executes commandLine through sh -c, capturing stdout and stderr into a
// single buffer in the order they are written. When ctx ends the whole
// process group is killed.
func (r *DefaultRunner) Run(ctx context.Context, workDir, commandLine string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine) //#nosec G204 -- build commands are trusted configuration
	cmd.Dir = workDir
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	var buf bytes.Buffer
	var w io.Writer = &buf
	if r.LiveOut != nil {
		w = io.MultiWriter(&buf, r.LiveOut)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}

	return buf.String(), exitCode, err
}

// CommandLine prefixes command with the KEY=VALUE assignments in env.
func CommandLine(command string, env []string) string {
	if len(env) == 0 {
		return command
	}
	return strings.Join(env, " ") + " " + command
}

// Ensure DefaultRunner implements Runner.
var _ Runner = (*DefaultRunner)(nil)
