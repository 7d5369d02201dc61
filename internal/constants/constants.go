// Package constants provides centralized constant values used throughout railsci.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Workspace files touched by the build.
const (
	// LegacyVersionManagerFile is the stale RVM config removed before every build.
	LegacyVersionManagerFile = ".rvmrc"

	// ConfigDir is the Rails configuration directory, relative to the workspace.
	ConfigDir = "config"

	// TemplateSuffix marks checked-in example configuration files.
	TemplateSuffix = ".example"

	// TemplatePattern matches the template files materialized before tests run.
	TemplatePattern = "*.yml" + TemplateSuffix

	// DatabaseConfigName is generated from a built-in template and is never
	// copied from its example file.
	DatabaseConfigName = "database.yml"

	// TestReportFile is the JUnit report written by rspec.
	TestReportFile = "results.xml"

	// AssetCacheDir is the workspace directory replaced by a link into the
	// persistent asset cache.
	AssetCacheDir = "tmp"

	// ArchiveExtension is the extension of the packaged application.
	ArchiveExtension = ".war"
)

// Directory names used under the home directory.
const (
	// RailsCIHome is the hidden directory name where railsci keeps its own data.
	RailsCIHome = ".railsci"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// PersistentCacheDir is the home-relative root of persistent asset caches.
	PersistentCacheDir = "tmp"

	// CacheLockSuffix is appended to a persistent cache path to form its lock file.
	CacheLockSuffix = ".lock"
)

// Log rotation settings for the CLI log file.
const (
	// CLILogFileName is the name of the global CLI log file.
	CLILogFileName = "railsci.log"

	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 5

	// LogMaxAgeDays is the number of days to retain rotated files.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Configuration file names.
const (
	// ProjectConfigName is the optional per-workspace configuration file.
	ProjectConfigName = ".railsci.yaml"

	// EnvPrefix is the prefix for railsci environment overrides.
	EnvPrefix = "RAILSCI"
)

// Source-control and artifact naming defaults.
const (
	// DefaultMainlineBranch is the branch whose artifact uses the mainline alias.
	DefaultMainlineBranch = "master"

	// DefaultMainlineAlias replaces the mainline branch in artifact names.
	DefaultMainlineAlias = "trunk"

	// DefaultArtifactRoot is the Subversion directory holding one folder of wars per app.
	DefaultArtifactRoot = "svn+ssh://svn@code.berkeley.edu/eas-rails/wars"

	// DefaultDeleteSettleDelay is how long to wait after removing a war from the
	// artifact store before importing its replacement.
	DefaultDeleteSettleDelay = 2 * time.Second
)

// External tool commands.
const (
	// BundleInstallCommand installs the application's gems.
	BundleInstallCommand = "bundle install"

	// MigrateCommand prepares the test database.
	MigrateCommand = "bundle exec rake db:migrate"

	// SpecCommand runs the suite, skipping examples that need a browser.
	SpecCommand = "bundle exec rspec spec --tag ~js --format RspecJunitFormatter --out " + TestReportFile

	// AssetsCommand precompiles static assets.
	AssetsCommand = "bundle exec rake assets:precompile"

	// DefaultPackageCommand builds <workspace-dir>.war with warbler.
	DefaultPackageCommand = "bundle exec warble war"

	// TestRailsEnv is the environment assignment for migrations and specs.
	TestRailsEnv = "RAILS_ENV=test"

	// CIRailsEnv is the environment assignment for asset compilation.
	CIRailsEnv = "RAILS_ENV=ci"
)

// Database template values.
const (
	// DatabaseAdapter is the adapter written into the generated database.yml.
	DatabaseAdapter = "sqlite3"

	// DatabaseUser is the CI database user.
	DatabaseUser = "jenkins"

	// DatabaseHost is the CI database host.
	DatabaseHost = "localhost"
)
