package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
)

// Overrides holds values taken from the command line. Nil flag pointers leave
// the loaded value untouched.
type Overrides struct {
	AppName       string
	RunSpecs      *bool
	CompileAssets *bool
}

// newViperInstance creates a Viper instance with defaults, the RAILSCI_ prefix
// and the Jenkins variable bindings.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Jenkins names win over their RAILSCI_ equivalents.
	_ = v.BindEnv("workspace", constants.EnvWorkspace, "RAILSCI_WORKSPACE")
	_ = v.BindEnv("home", constants.EnvHome, "RAILSCI_HOME")
	_ = v.BindEnv("scm.branch", constants.EnvGitBranch, "RAILSCI_SCM_BRANCH")
	_ = v.BindEnv("scm.svn_url", constants.EnvSVNURL, "RAILSCI_SCM_SVN_URL")
	return v
}

// setDefaults mirrors DefaultConfig. Keys must match the mapstructure tags.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("app_name", "")
	v.SetDefault("workspace", "")
	v.SetDefault("home", "")
	v.SetDefault("run_specs", d.RunSpecs)
	v.SetDefault("compile_assets", d.CompileAssets)

	v.SetDefault("scm.branch", "")
	v.SetDefault("scm.svn_url", "")
	v.SetDefault("scm.mainline_branch", d.SCM.MainlineBranch)
	v.SetDefault("scm.mainline_alias", d.SCM.MainlineAlias)
	v.SetDefault("scm.remote_branch_prefix", d.SCM.RemoteBranchPrefix)

	v.SetDefault("artifact.root", d.Artifact.Root)
	v.SetDefault("artifact.package_command", d.Artifact.PackageCommand)
	v.SetDefault("artifact.delete_settle_delay", d.Artifact.DeleteSettleDelay.String())

	v.SetDefault("commands.timeout", "0s")
	v.SetDefault("commands.env", []string{})
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads the build configuration and applies command-line overrides.
//
// A missing project config file is not an error. The returned config has been
// validated; validation failures wrap ErrConfigInvalid or one of the
// ErrMissing* sentinels.
func Load(ctx context.Context, overrides Overrides) (*Config, error) {
	v := newViperInstance()

	if workspace := v.GetString("workspace"); workspace != "" {
		if err := loadProjectConfig(v, ProjectConfigPath(workspace)); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	applyOverrides(&cfg, overrides)

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Str("app_name", cfg.AppName).
		Str("workspace", cfg.WorkspacePath).
		Bool("run_specs", cfg.RunSpecs).
		Bool("compile_assets", cfg.CompileAssets).
		Dur("commands.timeout", cfg.Commands.Timeout).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadProjectConfig merges the workspace config file if it exists.
func loadProjectConfig(v *viper.Viper, path string) error {
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read project config file %s", path)
	}
	return nil
}

// applyOverrides copies command-line values over the loaded config.
func applyOverrides(cfg *Config, overrides Overrides) {
	if overrides.AppName != "" {
		cfg.AppName = overrides.AppName
	}
	if overrides.RunSpecs != nil {
		cfg.RunSpecs = *overrides.RunSpecs
	}
	if overrides.CompileAssets != nil {
		cfg.CompileAssets = *overrides.CompileAssets
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set (for example by Jenkins) are kept. It reports whether
// a file was loaded; a missing file is not an error.
func LoadDotEnv(path string) (bool, error) {
	if path == "" || !fileExists(path) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, errors.Wrapf(err, "failed to load env file %s", path)
	}
	return true, nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// viperDecoderOption decodes durations and comma-separated lists from
// environment strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
