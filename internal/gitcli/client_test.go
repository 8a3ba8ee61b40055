package gitcli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shinji-kodama/docsync/internal/gitcli"
	mockgitcli "github.com/shinji-kodama/docsync/internal/gitcli/mock"
	"github.com/shinji-kodama/docsync/internal/model"
	"github.com/shinji-kodama/docsync/internal/testrepo"
)

func TestClient_SparseCloneArgs(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	dest := filepath.Join("/tmp", "work", "repo")
	runner.EXPECT().Run(gomock.Any(), ".",
		"clone", "--no-checkout", "--depth", "1", "--single-branch", "--filter=blob:none",
		"--", "https://example.com/site.git", dest,
	).Return("", nil)

	require.NoError(t, c.SparseClone(context.Background(), "https://example.com/site.git", dest))
}

// TestClient_SparseCloneRelativeDest checks that a relative destination is
// passed to git as an absolute path, so it does not depend on the directory
// git runs in.
func TestClient_SparseCloneRelativeDest(t *testing.T) {
	work := t.TempDir()
	t.Chdir(work)

	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	wd, err := os.Getwd()
	require.NoError(t, err)
	runner.EXPECT().Run(gomock.Any(), ".",
		"clone", "--no-checkout", "--depth", "1", "--single-branch", "--filter=blob:none",
		"--", "https://example.com/site.git", filepath.Join(wd, "tmp", "repo"),
	).Return("", nil)

	require.NoError(t, c.SparseClone(context.Background(), "https://example.com/site.git", filepath.Join("tmp", "repo")))
}

func TestClient_EnableSparse(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), "/repo", "sparse-checkout", "init", "--cone").Return("", nil),
		runner.EXPECT().Run(gomock.Any(), "/repo", "sparse-checkout", "set", "docs").Return("", nil),
	)

	require.NoError(t, c.EnableSparse(context.Background(), "/repo", "docs"))
}

// TestClient_EnableSparseInitFails checks that a failing init stops before set.
func TestClient_EnableSparseInitFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	initErr := model.NewCLIError(model.ExitGitError, "git sparse-checkout init --cone failed")
	runner.EXPECT().Run(gomock.Any(), "/repo", "sparse-checkout", "init", "--cone").Return("", initErr)

	err := c.EnableSparse(context.Background(), "/repo", "docs")
	assert.ErrorIs(t, err, initErr)
}

func TestClient_DefaultBranch(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	runner.EXPECT().Run(gomock.Any(), "/repo", "symbolic-ref", "--short", "HEAD").Return("trunk\n", nil)

	branch, err := c.DefaultBranch(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)
}

func TestClient_DefaultBranchEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mockgitcli.NewMockRunner(ctrl)
	c := gitcli.NewClient(runner)

	runner.EXPECT().Run(gomock.Any(), "/repo", "symbolic-ref", "--short", "HEAD").Return("\n", nil)

	_, err := c.DefaultBranch(context.Background(), "/repo")
	require.Error(t, err)
	assert.Equal(t, model.ExitGitError, model.ExitCodeOf(err))
}

// TestClient_SparseCheckoutEndToEnd runs the real git steps against a local
// repository and checks that only the docs directory (plus the root files
// cone mode always includes) is materialized.
func TestClient_SparseCheckoutEndToEnd(t *testing.T) {
	remote := testrepo.New(t, map[string]string{
		"README.md":        "# Site\n",
		"src/index.ts":     "export {}\n",
		"docs/guide.md":    "# Guide\n",
		"docs/sub/page.md": "# Page\n",
	})

	ctx := context.Background()
	c := gitcli.NewClient(gitcli.NewExecRunner(""))
	dest := filepath.Join(t.TempDir(), "repo")

	require.NoError(t, c.SparseClone(ctx, remote.URL, dest))
	require.NoError(t, c.EnableSparse(ctx, dest, "docs"))

	branch, err := c.DefaultBranch(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	require.NoError(t, c.Checkout(ctx, dest, branch))

	assert.FileExists(t, filepath.Join(dest, "docs", "guide.md"))
	assert.FileExists(t, filepath.Join(dest, "docs", "sub", "page.md"))
	_, statErr := os.Stat(filepath.Join(dest, "src"))
	assert.True(t, os.IsNotExist(statErr), "src must not be materialized")

	// Shallow: exactly one commit reachable.
	count := testrepo.Git(t, dest, "rev-list", "--count", "HEAD")
	assert.Equal(t, "1\n", count)
}

// TestClient_SparseCloneRelativeLocalRemote clones a local repository named
// by a path relative to the working directory, as a shell user would.
func TestClient_SparseCloneRelativeLocalRemote(t *testing.T) {
	remote := testrepo.New(t, map[string]string{"docs/guide.md": "# Guide\n"})
	dest := filepath.Join(t.TempDir(), "repo")
	t.Chdir(filepath.Dir(remote.Dir))

	ctx := context.Background()
	c := gitcli.NewClient(gitcli.NewExecRunner(""))
	require.NoError(t, c.SparseClone(ctx, "./"+filepath.Base(remote.Dir), dest))

	branch, err := c.DefaultBranch(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestClient_SparseCloneUnreachable(t *testing.T) {
	c := gitcli.NewClient(gitcli.NewExecRunner(""))
	dest := filepath.Join(t.TempDir(), "repo")

	err := c.SparseClone(context.Background(), "file://"+filepath.ToSlash(filepath.Join(t.TempDir(), "missing")), dest)
	require.Error(t, err)
	assert.Equal(t, model.ExitGitError, model.ExitCodeOf(err))
}
