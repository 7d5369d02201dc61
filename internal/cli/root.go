// Package cli provides the command-line interface for railsci.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates the railsci command. deps replaces collaborators in
// tests; the zero value uses the real ones.
func newRootCmd(flags *BuildFlags, info BuildInfo, deps buildDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "railsci <app_name>",
		Short: "Build, test and publish a Rails application from a Jenkins workspace",
		Long: `railsci runs the CI build of a Rails application in $WORKSPACE:

  1. remove .rvmrc and run bundle install
  2. generate config/database.yml and copy config/*.yml.example files
  3. migrate and run the spec suite (--run-specs-flag, default true)
  4. precompile assets into a persistent cache (--compile-assets-flag, default true)
  5. package a war named after the git branch or svn url and publish it

Any flag value other than "false" enables the step. Step flag values must
be joined with '=' (--run-specs-flag=false); a bare step flag means true.
$RAILSCI_ENV_FILE or --env-file names a dotenv file to load first; the
workspace .env is never read implicitly. The first failing
command stops the build and its exit status becomes railsci's.`,
		Example: `  railsci myapp
  railsci myapp --run-specs-flag=false
  railsci myapp --compile-assets-flag=false --verbose`,
		Version: formatVersion(info),
		Args:    appNameArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, flags, args, deps)
		},
		// SilenceUsage prevents printing usage on build failures
		SilenceUsage: true,
	}

	AddBuildFlags(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &BuildFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, buildDeps{})
	return cmd.ExecuteContext(ctx)
}
