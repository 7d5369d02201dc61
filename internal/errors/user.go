package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to the message printed at the end of a failed build.
// A slice keeps errors.Is() traversal order deterministic.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "A build command failed. Its output is printed above.",
			Action:  "Fix the failing step and rebuild.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "A build command timed out.",
			Action:  "Raise RAILSCI_COMMANDS_TIMEOUT or investigate the hung tool.",
		},
	},
	{
		err: ErrUnrecognizedSCM,
		info: ErrorInfo{
			Message: "The workspace is neither a git nor a Subversion checkout.",
			Action:  "Check the job's source-control settings.",
		},
	},
	{
		err: ErrBranchUnknown,
		info: ErrorInfo{
			Message: "Could not determine the git branch for the artifact name.",
			Action:  "Set GIT_BRANCH or check out a branch instead of a detached HEAD.",
		},
	},
	{
		err: ErrSVNURLMissing,
		info: ErrorInfo{
			Message: "SVN_URL is not set for a Subversion workspace.",
			Action:  "Run the build from a Jenkins Subversion job or export SVN_URL.",
		},
	},
	{
		err: ErrMissingAppName,
		info: ErrorInfo{
			Message: "No application name was given.",
			Action:  "Run 'railsci <app_name>'.",
		},
	},
	{
		err: ErrTooManyArgs,
		info: ErrorInfo{
			Message: "Only one application name may be given.",
			Action:  "Pass step flag values with '=', e.g. --run-specs-flag=false.",
		},
	},
	{
		err: ErrMissingWorkspace,
		info: ErrorInfo{
			Message: "WORKSPACE is not set.",
			Action:  "Export WORKSPACE or run the build from Jenkins.",
		},
	},
	{
		err: ErrMissingHome,
		info: ErrorInfo{
			Message: "HOME is not set.",
			Action:  "Export HOME so the asset cache and logs have a location.",
		},
	},
	{
		err: ErrWorkspaceNotFound,
		info: ErrorInfo{
			Message: "The workspace directory does not exist.",
		},
	},
	{
		err: ErrCacheLocked,
		info: ErrorInfo{
			Message: "Another build is relinking the same asset cache.",
			Action:  "Wait for the other build to finish and retry.",
		},
	},
	{
		err: ErrArchiveMissing,
		info: ErrorInfo{
			Message: "Packaging finished without producing a war file.",
			Action:  "Check the warbler configuration in config/warble.rb.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup, then falls back to errors.Is() traversal
// for wrapped errors. Unknown errors keep their own message.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing obvious to do.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
