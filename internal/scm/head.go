package scm

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// HeadResolver reads the branch from the repository HEAD with go-git,
// without shelling out to a git binary.
type HeadResolver struct{}

// CurrentBranch returns the short name of the branch HEAD points at.
// A detached HEAD yields an empty name.
func (HeadResolver) CurrentBranch(workspace string) (string, error) {
	repo, err := git.PlainOpen(workspace)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", workspace, err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// Ensure HeadResolver implements BranchResolver.
var _ BranchResolver = HeadResolver{}
