package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/railsci/internal/clock"
	"github.com/mrz1836/railsci/internal/config"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
	"github.com/mrz1836/railsci/internal/pipeline"
	"github.com/mrz1836/railsci/internal/scm"
	"github.com/mrz1836/railsci/internal/shell"
	"github.com/mrz1836/railsci/internal/signal"
)

// buildDeps holds collaborators that tests replace. Nil fields use the
// real implementations.
type buildDeps struct {
	runner   shell.Runner
	resolver scm.BranchResolver
	clock    clock.Clock
	logger   func(verbose, quiet bool) zerolog.Logger
}

func (d buildDeps) newLogger(verbose, quiet bool) zerolog.Logger {
	if d.logger != nil {
		return d.logger(verbose, quiet)
	}
	return InitLogger(verbose, quiet, os.Getenv(constants.EnvHome))
}

// interruptSource reports the signal that interrupted a build.
type interruptSource interface {
	Interrupted() <-chan struct{}
	Received() os.Signal
}

// watchInterrupt logs as soon as src is interrupted, while the running
// command is still being killed. The returned func stops watching; an
// interrupt that arrived before it is still logged.
func watchInterrupt(src interruptSource, logger zerolog.Logger) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-src.Interrupted():
		case <-done:
			select {
			case <-src.Interrupted():
			default:
				return
			}
		}
		event := logger.Warn()
		if sig := src.Received(); sig != nil {
			event = event.Str("signal", sig.String())
		}
		event.Msg("interrupt received, stopping build")
	}()
	return func() {
		close(done)
		<-finished
	}
}

// envFilePath returns the dotenv file named by --env-file or, failing that,
// RAILSCI_ENV_FILE. No file is loaded unless one of them is set.
func envFilePath(cmd *cobra.Command, flags *BuildFlags) string {
	if cmd.Flags().Changed(FlagEnvFile) {
		return flags.EnvFile
	}
	return os.Getenv(constants.EnvEnvFile)
}

// runBuild loads the configuration and runs the pipeline.
func runBuild(cmd *cobra.Command, flags *BuildFlags, args []string, deps buildDeps) error {
	envFile := envFilePath(cmd, flags)
	loaded, err := config.LoadDotEnv(envFile)
	if err != nil {
		return errors.NewExitCode2Error(err)
	}
	if envFile != "" && !loaded {
		return errors.NewExitCode2Error(errors.Wrapf(errors.ErrConfigInvalid, "env file %s not found", envFile))
	}

	logger := deps.newLogger(flags.Verbose, flags.Quiet).With().Str("run_id", uuid.NewString()).Logger()
	ctx := logger.WithContext(cmd.Context())
	if loaded {
		logger.Debug().Str("path", envFile).Msg("loaded env file")
	}

	cfg, err := config.Load(ctx, flags.Overrides(cmd, args))
	if err != nil {
		if isInvalidConfig(err) {
			return errors.NewExitCode2Error(err)
		}
		return err
	}

	handler := signal.NewHandler(ctx)
	defer handler.Stop()
	ctx = handler.Context()
	stopWatch := watchInterrupt(handler, logger)
	defer stopWatch()

	execOpts := []shell.Option{
		shell.WithOutput(cmd.OutOrStdout()),
		shell.WithTimeout(cfg.Commands.Timeout),
		shell.WithDefaultEnv(cfg.Commands.Env),
	}
	driverOpts := []pipeline.Option{}
	if deps.runner != nil {
		execOpts = append(execOpts, shell.WithRunner(deps.runner))
	}
	if deps.clock != nil {
		execOpts = append(execOpts, shell.WithClock(deps.clock))
		driverOpts = append(driverOpts, pipeline.WithClock(deps.clock))
	}
	if deps.resolver != nil {
		driverOpts = append(driverOpts, pipeline.WithBranchResolver(deps.resolver))
	}
	driverOpts = append(driverOpts, pipeline.WithExecutor(shell.NewExecutor(cfg.WorkspacePath, execOpts...)))

	driver, err := pipeline.NewDriver(cfg, driverOpts...)
	if err != nil {
		return err
	}

	outcome, err := driver.Run(ctx)
	if err != nil {
		if sig := handler.Received(); sig != nil {
			logger.Warn().Str("signal", sig.String()).Msg("build interrupted")
			return errors.NewExitError(sig.String(), handler.ExitCode(), err)
		}
		message, action := errors.Actionable(err)
		logger.Error().Err(err).Str("action", action).Msg(message)
		return err
	}

	event := logger.Info().Str("artifact", outcome.Source.ArchiveName())
	if outcome.Report != nil {
		event = event.Object("report", outcome.Report)
	}
	event.Msg("build succeeded")
	return nil
}
