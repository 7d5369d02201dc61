package scm_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/railsci/internal/scm"
)

// initRepo creates a repository with one commit on master.
func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Master},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gemfile"), []byte("source 'https://rubygems.org'\n"), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("Gemfile")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.edu", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, repo, hash
}

func TestHeadResolver_Branch(t *testing.T) {
	t.Parallel()

	dir, repo, _ := initRepo(t)

	branch, err := scm.HeadResolver{}.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature-y"),
		Create: true,
	}))

	branch, err = scm.HeadResolver{}.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Equal(t, "feature-y", branch)
}

func TestHeadResolver_DetachedHead(t *testing.T) {
	t.Parallel()

	dir, repo, hash := initRepo(t)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: hash}))

	branch, err := scm.HeadResolver{}.CurrentBranch(dir)
	require.NoError(t, err)
	assert.Empty(t, branch)
}

func TestHeadResolver_NotARepository(t *testing.T) {
	t.Parallel()

	_, err := scm.HeadResolver{}.CurrentBranch(t.TempDir())
	require.Error(t, err)
}

func TestResolve_WithHeadResolver(t *testing.T) {
	t.Parallel()

	dir, _, _ := initRepo(t)
	cfg := defaultSCM()

	src, err := scm.Resolve(dir, cfg, scm.HeadResolver{})
	require.NoError(t, err)
	assert.Equal(t, "trunk", src.ArtifactName)
}
