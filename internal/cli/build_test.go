package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
)

func TestBuild_Success(t *testing.T) {
	workspace, home := jenkinsEnv(t)
	runner := buildRunner(workspace)

	stdout, logs, err := executeBuild(t, runner, "myapp")
	require.NoError(t, err)
	assert.Equal(t, ExitSuccess, ExitCodeForError(err))

	assert.Equal(t, []string{
		bundleCmd, migrateCmd, specCmd, assetsCmd, packageCmd, listCmd, importCmd("trunk"),
	}, runner.Calls())
	assert.Contains(t, stdout, "bundle install ... \nBundle complete!\n[OK]\n")
	assert.Contains(t, logs, `"run_id"`)
	assert.Contains(t, logs, "build succeeded")

	assert.FileExists(t, filepath.Join(workspace, "trunk.war"))
	target, err := os.Readlink(filepath.Join(workspace, "tmp"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tmp", "myapp"), target)
}

func TestBuild_StepFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "specs disabled",
			args:     []string{"myapp", "--run-specs-flag=false"},
			expected: []string{bundleCmd, assetsCmd, packageCmd, listCmd, importCmd("trunk")},
		},
		{
			name:     "assets disabled",
			args:     []string{"myapp", "--compile-assets-flag=false"},
			expected: []string{bundleCmd, migrateCmd, specCmd, packageCmd, listCmd, importCmd("trunk")},
		},
		{
			name:     "non-false value enables",
			args:     []string{"myapp", "--run-specs-flag=no", "--compile-assets-flag=0"},
			expected: []string{bundleCmd, migrateCmd, specCmd, assetsCmd, packageCmd, listCmd, importCmd("trunk")},
		},
		{
			name:     "bare flag enables",
			args:     []string{"myapp", "--run-specs-flag", "--compile-assets-flag=false"},
			expected: []string{bundleCmd, migrateCmd, specCmd, packageCmd, listCmd, importCmd("trunk")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace, _ := jenkinsEnv(t)
			runner := buildRunner(workspace)

			_, _, err := executeBuild(t, runner, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, runner.Calls())
		})
	}
}

func TestBuild_FailingCommandExitCode(t *testing.T) {
	workspace, _ := jenkinsEnv(t)
	runner := buildRunner(workspace)
	runner.SetResponse(specCmd, "3 failures", 7)

	stdout, _, err := executeBuild(t, runner, "myapp")
	require.Error(t, err)
	assert.Equal(t, 7, ExitCodeForError(err))
	assert.Contains(t, stdout, "[FAILED]\n7\n")
	assert.NotContains(t, runner.Calls(), assetsCmd)
	assert.NotContains(t, runner.Calls(), packageCmd)
}

func TestBuild_UnrecognizedSCM(t *testing.T) {
	workspace, _ := jenkinsEnv(t)
	require.NoError(t, os.RemoveAll(filepath.Join(workspace, ".git")))
	runner := buildRunner(workspace)

	_, _, err := executeBuild(t, runner, "myapp")
	require.ErrorIs(t, err, errors.ErrUnrecognizedSCM)
	assert.Equal(t, ExitError, ExitCodeForError(err))
	assert.NotContains(t, runner.Calls(), packageCmd)
}

func TestBuild_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		setup    func(t *testing.T)
		expected error
	}{
		{
			name:     "missing app name",
			args:     nil,
			expected: errors.ErrMissingAppName,
		},
		{
			name:     "missing workspace",
			args:     []string{"myapp"},
			setup:    func(t *testing.T) { t.Setenv(constants.EnvWorkspace, "") },
			expected: errors.ErrMissingWorkspace,
		},
		{
			name:     "missing home",
			args:     []string{"myapp"},
			setup:    func(t *testing.T) { t.Setenv(constants.EnvHome, "") },
			expected: errors.ErrMissingHome,
		},
		{
			name:     "explicit env file missing",
			args:     []string{"myapp", "--env-file", "/nonexistent/ci.env"},
			expected: errors.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace, _ := jenkinsEnv(t)
			if tt.setup != nil {
				tt.setup(t)
			}
			runner := buildRunner(workspace)

			_, _, err := executeBuild(t, runner, tt.args...)
			require.ErrorIs(t, err, tt.expected)
			assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
			assert.Empty(t, runner.Calls())
		})
	}
}

func TestBuild_TooManyArgs(t *testing.T) {
	workspace, _ := jenkinsEnv(t)
	runner := buildRunner(workspace)

	_, _, err := executeBuild(t, runner, "myapp", "extra")
	require.ErrorIs(t, err, errors.ErrTooManyArgs)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s), received 2")
	assert.NotContains(t, err.Error(), "'='")
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	assert.Empty(t, runner.Calls())
}

func TestBuild_StepFlagSpaceForm(t *testing.T) {
	tests := []struct {
		name string
		args []string
		hint string
	}{
		{"value after app name", []string{"myapp", "--run-specs-flag", "false"}, "--run-specs-flag=false"},
		{"value before app name", []string{"--compile-assets-flag", "FALSE", "myapp"}, "--run-specs-flag=false"},
		{"true value", []string{"myapp", "--run-specs-flag", "true"}, "--run-specs-flag=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspace, _ := jenkinsEnv(t)
			runner := buildRunner(workspace)

			_, _, err := executeBuild(t, runner, tt.args...)
			require.ErrorIs(t, err, errors.ErrTooManyArgs)
			assert.Contains(t, err.Error(), "step flags take their value with '='")
			assert.Contains(t, err.Error(), tt.hint)
			assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
			assert.Empty(t, runner.Calls())
		})
	}
}

func TestBuild_WorkspaceEnvFileNotLoadedByDefault(t *testing.T) {
	const key, appKey = "RAILSCI_SCM_MAINLINE_ALIAS", "MYAPP_DOTENV_MARKER"
	t.Cleanup(func() {
		_ = os.Unsetenv(key)
		_ = os.Unsetenv(appKey)
	})

	workspace, _ := jenkinsEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(workspace, ".env"), []byte(key+"=stable\n"+appKey+"=1\n"), 0o600))
	runner := buildRunner(workspace)

	_, _, err := executeBuild(t, runner, "myapp", "--compile-assets-flag=false", "--run-specs-flag=false")
	require.NoError(t, err)
	assert.Equal(t, importCmd("trunk"), runner.Calls()[len(runner.Calls())-1])
	_, found := os.LookupEnv(appKey)
	assert.False(t, found, "application dotenv stays out of the build environment")
}

func TestBuild_EnvFileFromEnvironment(t *testing.T) {
	const key = "RAILSCI_SCM_MAINLINE_ALIAS"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	workspace, home := jenkinsEnv(t)
	envFile := filepath.Join(home, "ci.env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=stable\n"), 0o600))
	t.Setenv(constants.EnvEnvFile, envFile)
	runner := buildRunner(workspace)
	runner.SetResponse(importCmd("stable"), "", 0)

	_, _, err := executeBuild(t, runner, "myapp", "--compile-assets-flag=false", "--run-specs-flag=false")
	require.NoError(t, err)
	assert.Equal(t, importCmd("stable"), runner.Calls()[len(runner.Calls())-1])
	assert.FileExists(t, filepath.Join(workspace, "stable.war"))
}

func TestBuild_EnvFileFromEnvironmentMissing(t *testing.T) {
	workspace, _ := jenkinsEnv(t)
	t.Setenv(constants.EnvEnvFile, filepath.Join(workspace, "missing.env"))
	runner := buildRunner(workspace)

	_, _, err := executeBuild(t, runner, "myapp")
	require.ErrorIs(t, err, errors.ErrConfigInvalid)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	assert.Empty(t, runner.Calls())
}
