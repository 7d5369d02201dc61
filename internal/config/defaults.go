package config

import (
	"github.com/mrz1836/railsci/internal/constants"
)

// DefaultConfig returns a Config holding the built-in defaults. Identity
// fields (app name, workspace, home) are left empty.
func DefaultConfig() *Config {
	return &Config{
		RunSpecs:      true,
		CompileAssets: true,
		SCM: SCMConfig{
			MainlineBranch: constants.DefaultMainlineBranch,
			MainlineAlias:  constants.DefaultMainlineAlias,
		},
		Artifact: ArtifactConfig{
			Root:              constants.DefaultArtifactRoot,
			PackageCommand:    constants.DefaultPackageCommand,
			DeleteSettleDelay: constants.DefaultDeleteSettleDelay,
		},
		Commands: CommandsConfig{
			Timeout: 0,
			Env:     nil,
		},
	}
}
