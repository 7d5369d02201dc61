// Package scm detects how a workspace was checked out and derives the name of
// the artifact built from it.
//
// Detection checks the workspace once for a .git or .svn entry; the resulting
// Kind is passed explicitly to whatever needs it.
package scm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/railsci/internal/config"
	"github.com/mrz1836/railsci/internal/constants"
	"github.com/mrz1836/railsci/internal/errors"
)

// Kind is the source-control system of a workspace.
type Kind int

// Supported source-control kinds.
const (
	Unknown Kind = iota
	Git
	Subversion
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Git:
		return "git"
	case Subversion:
		return "subversion"
	default:
		return "unknown"
	}
}

// Detect checks workspace for source-control markers. Git takes precedence
// when both are present. A .git file (as in worktrees and submodules) counts.
func Detect(workspace string) Kind {
	switch {
	case exists(filepath.Join(workspace, constants.GitMarker)):
		return Git
	case exists(filepath.Join(workspace, constants.SubversionMarker)):
		return Subversion
	default:
		return Unknown
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Source is a resolved checkout: its kind and the artifact base name.
type Source struct {
	Kind         Kind
	ArtifactName string
	// Branch is the git branch the name was derived from (git only).
	Branch string
}

// ArchiveName returns the artifact file name, <name>.war.
func (s Source) ArchiveName() string {
	return s.ArtifactName + constants.ArchiveExtension
}

// BranchResolver reads the checked-out branch of a git workspace.
type BranchResolver interface {
	CurrentBranch(workspace string) (string, error)
}

// Resolve detects the workspace kind and computes the artifact name.
//
// Git: the configured branch (falling back to the repository HEAD via
// resolver), with the mainline branch replaced by the mainline alias.
// Subversion: the final path segment of the SVN URL.
// Anything else fails with ErrUnrecognizedSCM.
func Resolve(workspace string, cfg config.SCMConfig, resolver BranchResolver) (Source, error) {
	kind := Detect(workspace)

	switch kind {
	case Git:
		branch := cfg.NormalizedBranch()
		if branch == "" && resolver != nil {
			headBranch, err := resolver.CurrentBranch(workspace)
			if err != nil {
				return Source{Kind: kind}, errors.Wrap(errors.ErrBranchUnknown, err.Error())
			}
			branch = headBranch
		}
		if branch == "" {
			return Source{Kind: kind}, errors.ErrBranchUnknown
		}
		return Source{Kind: kind, ArtifactName: GitArtifactName(branch, cfg), Branch: branch}, nil

	case Subversion:
		name := SubversionArtifactName(cfg.SVNURL)
		if name == "" {
			return Source{Kind: kind}, errors.ErrSVNURLMissing
		}
		return Source{Kind: kind, ArtifactName: name}, nil

	default:
		return Source{Kind: kind}, errors.Wrapf(errors.ErrUnrecognizedSCM, "workspace %s", workspace)
	}
}

// GitArtifactName maps the mainline branch to its alias and returns any
// other branch unchanged.
func GitArtifactName(branch string, cfg config.SCMConfig) string {
	if branch == cfg.MainlineBranch {
		return cfg.MainlineAlias
	}
	return branch
}

// SubversionArtifactName returns the final path segment of url, ignoring
// trailing slashes.
func SubversionArtifactName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if trimmed == "" {
		return ""
	}
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}
