// Package config builds the immutable configuration for one railsci build.
//
// Configuration sources, highest precedence first:
//  1. Command-line arguments (app name, --run-specs-flag, --compile-assets-flag)
//  2. Jenkins environment (WORKSPACE, HOME, GIT_BRANCH, SVN_URL)
//  3. RAILSCI_* environment variables
//  4. Project config (<workspace>/.railsci.yaml)
//  5. Built-in defaults
//
// The configuration is read once at startup. Build steps receive it explicitly
// and never consult the environment themselves.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Config is the root configuration structure for a build.
type Config struct {
	// AppName identifies the Rails application; it names the test database
	// and the application's folder in the artifact store.
	AppName string `yaml:"app_name" mapstructure:"app_name"`

	// WorkspacePath is the checked-out application and the working directory
	// of every build step.
	WorkspacePath string `yaml:"workspace" mapstructure:"workspace"`

	// HomeDir holds the persistent asset cache and the railsci log file.
	HomeDir string `yaml:"home" mapstructure:"home"`

	// RunSpecs enables the migration and spec steps.
	RunSpecs bool `yaml:"run_specs" mapstructure:"run_specs"`

	// CompileAssets enables the asset cache and precompile steps.
	CompileAssets bool `yaml:"compile_assets" mapstructure:"compile_assets"`

	// SCM contains source-control inputs used to name the artifact.
	SCM SCMConfig `yaml:"scm" mapstructure:"scm"`

	// Artifact contains packaging and artifact store settings.
	Artifact ArtifactConfig `yaml:"artifact" mapstructure:"artifact"`

	// Commands contains settings applied to every external command.
	Commands CommandsConfig `yaml:"commands" mapstructure:"commands"`
}

// SCMConfig contains source-control inputs.
type SCMConfig struct {
	// Branch is the git branch Jenkins built (GIT_BRANCH). When empty the
	// branch is read from the repository HEAD.
	Branch string `yaml:"branch" mapstructure:"branch"`

	// SVNURL is the Subversion URL Jenkins checked out (SVN_URL).
	SVNURL string `yaml:"svn_url" mapstructure:"svn_url"`

	// MainlineBranch is the branch whose artifact is named MainlineAlias.
	// Default: "master"
	MainlineBranch string `yaml:"mainline_branch" mapstructure:"mainline_branch"`

	// MainlineAlias is the artifact name used for the mainline branch.
	// Default: "trunk"
	MainlineAlias string `yaml:"mainline_alias" mapstructure:"mainline_alias"`

	// RemoteBranchPrefix, when set, is stripped from Branch. Set it to
	// "origin/" for jobs whose GIT_BRANCH is a remote-tracking name.
	// Default: "" (branch used verbatim)
	RemoteBranchPrefix string `yaml:"remote_branch_prefix" mapstructure:"remote_branch_prefix"`
}

// ArtifactConfig contains packaging and artifact store settings.
type ArtifactConfig struct {
	// Root is the Subversion directory that holds one folder of wars per app.
	Root string `yaml:"root" mapstructure:"root"`

	// PackageCommand builds <workspace-dir>.war in the workspace.
	// Default: "bundle exec warble war"
	PackageCommand string `yaml:"package_command" mapstructure:"package_command"`

	// DeleteSettleDelay is how long to wait after deleting an existing war
	// before importing the new one. The store gives no propagation guarantee,
	// so this is a guess, not a bound.
	// Default: 2s
	DeleteSettleDelay time.Duration `yaml:"delete_settle_delay" mapstructure:"delete_settle_delay"`
}

// CommandsConfig contains settings applied to every external command.
type CommandsConfig struct {
	// Timeout bounds a single external command. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Env holds KEY=VALUE assignments prefixed to every command.
	Env []string `yaml:"env" mapstructure:"env"`
}

// jobNamePattern extracts the job from a Jenkins workspace path.
var jobNamePattern = regexp.MustCompile(`jobs/(.+)/workspace/?$`) //nolint:gochecknoglobals // compiled once

// JobName returns the Jenkins job name derived from the workspace path
// (…/jobs/<job>/workspace). When the path does not follow that layout the app
// name is used instead.
func (c *Config) JobName() string {
	m := jobNamePattern.FindStringSubmatch(filepath.ToSlash(c.WorkspacePath))
	if len(m) == 2 && m[1] != "" {
		return m[1]
	}
	return c.AppName
}

// NormalizedBranch returns Branch without the remote prefix.
func (s SCMConfig) NormalizedBranch() string {
	if s.RemoteBranchPrefix == "" {
		return s.Branch
	}
	return strings.TrimPrefix(s.Branch, s.RemoteBranchPrefix)
}

// ParseFlagValue interprets a --flag=value argument. Any value other than the
// literal "false" enables the flag.
func ParseFlagValue(value string) bool {
	return value != "false"
}
