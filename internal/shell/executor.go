package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/railsci/internal/clock"
	rcerrors "github.com/mrz1836/railsci/internal/errors"
	"github.com/mrz1836/railsci/internal/logging"
)

// TimeoutExitCode is reported when a command is killed by the command timeout,
// matching coreutils timeout(1).
const TimeoutExitCode = 124

// Executor runs build commands in the workspace with the announce, output and
// status protocol a human reads in the Jenkins console:
//
//	RAILS_ENV=test bundle exec rake db:migrate ...
//	<combined output>
//	[OK]
//
// A non-zero exit is returned as *errors.ExitError carrying the same code.
// Nothing is retried.
type Executor struct {
	runner     Runner
	workDir    string
	out        io.Writer
	timeout    time.Duration
	defaultEnv []string
	clock      clock.Clock

	// streams is set when the runner already writes output to out as the
	// command produces it.
	streams bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithRunner replaces the command runner (for testing).
func WithRunner(r Runner) Option {
	return func(e *Executor) { e.runner = r }
}

// WithOutput sets where commands and their output are printed. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Executor) { e.out = w }
}

// WithTimeout bounds each command. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) { e.timeout = d }
}

// WithDefaultEnv prefixes every command with the given assignments.
func WithDefaultEnv(env []string) Option {
	return func(e *Executor) { e.defaultEnv = append([]string(nil), env...) }
}

// WithClock replaces the clock used for timing (for testing).
func WithClock(c clock.Clock) Option {
	return func(e *Executor) { e.clock = c }
}

// NewExecutor creates an executor that runs commands in workDir. Without
// WithRunner, commands run through a DefaultRunner that streams their output
// to the executor's output as it is produced.
func NewExecutor(workDir string, opts ...Option) *Executor {
	e := &Executor{
		workDir: workDir,
		out:     os.Stdout,
		clock:   clock.RealClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runner == nil {
		e.runner = &DefaultRunner{LiveOut: e.out}
		e.streams = true
	}
	return e
}

// WorkDir returns the directory commands run in.
func (e *Executor) WorkDir() string {
	return e.workDir
}

// Run executes command with the default env followed by env prefixed to it.
func (e *Executor) Run(ctx context.Context, command string, env ...string) (*Result, error) {
	log := zerolog.Ctx(ctx)

	assignments := make([]string, 0, len(e.defaultEnv)+len(env))
	assignments = append(assignments, e.defaultEnv...)
	assignments = append(assignments, env...)
	commandLine := CommandLine(command, assignments)

	_, _ = fmt.Fprintf(e.out, "%s ... \n", commandLine)
	log.Info().
		Str("command", logging.SafeValue("command", commandLine)).
		Str("work_dir", e.workDir).
		Msg("executing command")

	cmdCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	startedAt := e.clock.Now()
	output, exitCode, runErr := e.runner.Run(cmdCtx, e.workDir, commandLine)
	completedAt := e.clock.Now()

	result := &Result{
		Command:     commandLine,
		ExitCode:    exitCode,
		Output:      output,
		DurationMs:  completedAt.Sub(startedAt).Milliseconds(),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}

	if !e.streams {
		_, _ = io.WriteString(e.out, output)
	}

	return e.handleOutcome(ctx, cmdCtx, result, runErr, log)
}

// handleOutcome prints the status line and classifies the result.
func (e *Executor) handleOutcome(ctx, cmdCtx context.Context, result *Result, runErr error, log *zerolog.Logger) (*Result, error) {
	if ctx.Err() != nil {
		result.Error = "context canceled"
		e.printFailure(result)
		return result, ctx.Err()
	}

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		result.ExitCode = TimeoutExitCode
		result.Error = "command timed out"
		e.printFailure(result)

		log.Error().
			Str("command", logging.SafeValue("command", result.Command)).
			Dur("timeout", e.timeout).
			Msg("command timed out")

		return result, rcerrors.NewExitError(result.Command, TimeoutExitCode, rcerrors.ErrCommandTimeout)
	}

	if runErr != nil || result.ExitCode != 0 {
		if result.ExitCode == 0 {
			result.ExitCode = 1
		}
		if runErr != nil {
			result.Error = runErr.Error()
		} else {
			result.Error = fmt.Sprintf("exit code %d", result.ExitCode)
		}
		e.printFailure(result)

		log.Error().
			Str("command", logging.SafeValue("command", result.Command)).
			Int("exit_code", result.ExitCode).
			Int64("duration_ms", result.DurationMs).
			Msg("command failed")

		return result, rcerrors.NewExitError(result.Command, result.ExitCode, rcerrors.ErrCommandFailed)
	}

	result.Success = true
	_, _ = io.WriteString(e.out, "[OK]\n")

	log.Info().
		Str("command", logging.SafeValue("command", result.Command)).
		Int64("duration_ms", result.DurationMs).
		Msg("command completed")

	return result, nil
}

func (e *Executor) printFailure(result *Result) {
	_, _ = fmt.Fprintf(e.out, "[FAILED]\n%d\n", result.ExitCode)
}
