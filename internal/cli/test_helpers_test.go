package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/railsci/internal/clock"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/shell"
	"github.com/mrz1836/railsci/internal/testutil"
)

const (
	testArtifactURL = constants.DefaultArtifactRoot + "/myapp/"

	bundleCmd  = "bundle install"
	migrateCmd = "RAILS_ENV=test bundle exec rake db:migrate"
	specCmd    = "RAILS_ENV=test bundle exec rspec spec --tag ~js --format RspecJunitFormatter --out results.xml"
	assetsCmd  = "RAILS_ENV=ci bundle exec rake assets:precompile"
	packageCmd = "bundle exec warble war"
	listCmd    = "svn list " + testArtifactURL
)

func importCmd(name string) string {
	return "svn import " + name + ".war " + testArtifactURL + name + ".war -m 'committing war " + name + ".war'"
}

var (
	_ shell.Runner = (*testutil.MockRunner)(nil)
	_ clock.Clock  = (*testutil.FakeClock)(nil)
)

// jenkinsEnv lays out a git workspace under jobs/myapp/workspace and points
// the Jenkins environment at it. Tests using it cannot run in parallel.
func jenkinsEnv(t *testing.T) (workspace, home string) {
	t.Helper()

	base := t.TempDir()
	workspace = filepath.Join(base, "jobs", "myapp", "workspace")
	home = filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, ".git"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, "config"), 0o750))
	require.NoError(t, os.MkdirAll(home, 0o750))

	t.Setenv(constants.EnvWorkspace, workspace)
	t.Setenv(constants.EnvHome, home)
	t.Setenv(constants.EnvGitBranch, "master")
	t.Setenv(constants.EnvSVNURL, "")
	t.Setenv(constants.EnvEnvFile, "")

	return workspace, home
}

// buildRunner answers every command of a full build successfully.
func buildRunner(workspace string) *testutil.MockRunner {
	runner := testutil.NewMockRunner()
	runner.SetResponse(bundleCmd, "Bundle complete!\n", 0)
	runner.SetResponse(migrateCmd, "", 0)
	runner.SetResponse(specCmd, "", 0)
	runner.SetResponse(assetsCmd, "", 0)
	runner.SetEffect(packageCmd, func() {
		_ = os.WriteFile(filepath.Join(workspace, filepath.Base(workspace)+".war"), []byte("war"), 0o600)
	})
	runner.SetResponse(listCmd, "", 0)
	runner.SetResponse(importCmd("trunk"), "", 0)
	return runner
}

// executeBuild runs the root command with args and returns its stdout, log
// output and error.
func executeBuild(t *testing.T, runner *testutil.MockRunner, args ...string) (stdout, logs string, err error) {
	t.Helper()

	var out, logBuf bytes.Buffer
	deps := buildDeps{
		runner: runner,
		clock:  testutil.NewFakeClock(),
		logger: func(verbose, quiet bool) zerolog.Logger {
			return InitLoggerWithWriter(verbose, quiet, &logBuf)
		},
	}

	cmd := newRootCmd(&BuildFlags{}, BuildInfo{Version: "test"}, deps)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), logBuf.String(), err
}
