package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/mrz1836/railsci/internal/errors"
)

// envNamePattern matches a portable environment variable name.
var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`) //nolint:gochecknoglobals // compiled once

// Validate checks the configuration for missing or inconsistent values.
// It returns the first failure found.
//
// Validation rules:
//   - app name, workspace and home must be set
//   - the workspace must be an existing directory
//   - mainline alias must not be empty
//   - artifact root and package command must not be empty
//   - settle delay and command timeout must not be negative
//   - every commands.env entry must be KEY=VALUE
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateIdentity(cfg); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.SCM.MainlineAlias) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "scm.mainline_alias must not be empty")
	}

	if err := validateArtifactConfig(&cfg.Artifact); err != nil {
		return err
	}

	return validateCommandsConfig(&cfg.Commands)
}

func validateIdentity(cfg *Config) error {
	if strings.TrimSpace(cfg.AppName) == "" {
		return errors.ErrMissingAppName
	}
	if cfg.WorkspacePath == "" {
		return errors.ErrMissingWorkspace
	}
	if cfg.HomeDir == "" {
		return errors.ErrMissingHome
	}

	info, err := os.Stat(cfg.WorkspacePath)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(errors.ErrWorkspaceNotFound, "workspace %s", cfg.WorkspacePath)
	}
	return nil
}

func validateArtifactConfig(cfg *ArtifactConfig) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "artifact.root must not be empty")
	}
	if strings.TrimSpace(cfg.PackageCommand) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "artifact.package_command must not be empty")
	}
	if cfg.DeleteSettleDelay < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"artifact.delete_settle_delay must not be negative, got %s", cfg.DeleteSettleDelay)
	}
	return nil
}

func validateCommandsConfig(cfg *CommandsConfig) error {
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"commands.timeout must not be negative, got %s", cfg.Timeout)
	}
	for _, assignment := range cfg.Env {
		name, _, ok := strings.Cut(assignment, "=")
		if !ok || !envNamePattern.MatchString(name) {
			return errors.Wrapf(errors.ErrConfigInvalid,
				"commands.env entry %q must be KEY=VALUE", assignment)
		}
	}
	return nil
}
