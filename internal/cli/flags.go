package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/railsci/internal/config"
	"github.com/mrz1836/railsci/internal/errors"
)

// Exit codes for the CLI. A failed build command exits with that
// command's own status instead.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error, including an unrecognized SCM.
	ExitError = 1
	// ExitInvalidInput indicates a missing argument, environment variable or
	// invalid configuration.
	ExitInvalidInput = 2
)

// Flag names.
const (
	FlagRunSpecs      = "run-specs-flag"
	FlagCompileAssets = "compile-assets-flag"
	FlagEnvFile       = "env-file"
)

// BuildFlags holds the command-line flags of a build.
type BuildFlags struct {
	// RunSpecs is the raw --run-specs-flag value.
	RunSpecs string
	// CompileAssets is the raw --compile-assets-flag value.
	CompileAssets string
	// EnvFile is a dotenv file loaded before configuration is read.
	EnvFile string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddBuildFlags adds the build flags to a command. The step flags take an
// optional value so that a bare --run-specs-flag means true.
func AddBuildFlags(cmd *cobra.Command, flags *BuildFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.RunSpecs, FlagRunSpecs, "true", `run migrations and specs (any value but "false" enables)`)
	f.Lookup(FlagRunSpecs).NoOptDefVal = "true"
	f.StringVar(&flags.CompileAssets, FlagCompileAssets, "true", `precompile assets (any value but "false" enables)`)
	f.Lookup(FlagCompileAssets).NoOptDefVal = "true"
	f.StringVar(&flags.EnvFile, FlagEnvFile, "", "dotenv file to load before reading configuration (or set $RAILSCI_ENV_FILE)")

	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// appNameArgs accepts at most the application name. A step flag given its
// value with a space leaves that value behind as an extra argument, which is
// reported with a hint to use the '=' form.
func appNameArgs(_ *cobra.Command, args []string) error {
	if len(args) <= 1 {
		return nil
	}
	msg := fmt.Sprintf("accepts at most 1 arg(s), received %d", len(args))
	for _, arg := range args {
		if lower := strings.ToLower(arg); lower == "true" || lower == "false" {
			msg += fmt.Sprintf("; step flags take their value with '=' (--%s=%s)", FlagRunSpecs, lower)
			break
		}
	}
	return errors.NewExitCode2Error(errors.Wrap(errors.ErrTooManyArgs, msg))
}

// Overrides converts the arguments and explicitly set flags into config
// overrides. Flags left unset do not override file or environment values.
func (f *BuildFlags) Overrides(cmd *cobra.Command, args []string) config.Overrides {
	var overrides config.Overrides
	if len(args) > 0 {
		overrides.AppName = strings.TrimSpace(args[0])
	}
	if cmd.Flags().Changed(FlagRunSpecs) {
		v := config.ParseFlagValue(f.RunSpecs)
		overrides.RunSpecs = &v
	}
	if cmd.Flags().Changed(FlagCompileAssets) {
		v := config.ParseFlagValue(f.CompileAssets)
		overrides.CompileAssets = &v
	}
	return overrides
}

// ExitCodeForError returns the process exit code for err.
//
// A failed external command yields that command's exit status. Missing
// arguments, missing environment and invalid configuration yield
// ExitInvalidInput, as do cobra's flag errors. Everything else, including
// an unrecognized SCM, yields ExitError.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if code, ok := errors.ExitCodeOf(err); ok {
		return code
	}

	if errors.IsExitCode2Error(err) || isInvalidConfig(err) {
		return ExitInvalidInput
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidConfig reports whether err comes from missing or invalid
// startup input.
func isInvalidConfig(err error) bool {
	for _, target := range []error{
		errors.ErrMissingAppName,
		errors.ErrTooManyArgs,
		errors.ErrMissingWorkspace,
		errors.ErrMissingHome,
		errors.ErrWorkspaceNotFound,
		errors.ErrConfigInvalid,
	} {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"accepts at most",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
