package constants

// Environment variables read at startup.
const (
	// EnvWorkspace is the Jenkins workspace path.
	EnvWorkspace = "WORKSPACE"

	// EnvHome is the home directory used for caches and logs.
	EnvHome = "HOME"

	// EnvGitBranch is the branch Jenkins checked out.
	EnvGitBranch = "GIT_BRANCH"

	// EnvSVNURL is the Subversion URL Jenkins checked out.
	EnvSVNURL = "SVN_URL"

	// EnvEnvFile names a dotenv file to load when --env-file is not given.
	EnvEnvFile = "RAILSCI_ENV_FILE"
)

// Source-control marker entries checked in the workspace.
const (
	// GitMarker identifies a git checkout.
	GitMarker = ".git"

	// SubversionMarker identifies a Subversion checkout.
	SubversionMarker = ".svn"
)
