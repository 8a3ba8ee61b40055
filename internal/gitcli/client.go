package gitcli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/docsync/internal/model"
)

// Client exposes the git steps of a docs sync. Each method maps to one or
// two git invocations and returns as soon as one of them fails.
type Client struct {
	runner Runner
}

// NewClient creates a Client on top of runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// SparseClone clones remote into dest without checking out any file:
// history depth 1, the remote's default branch only, and blob contents
// left on the server until the checkout asks for them.
//
// The invocation runs in the caller's working directory, so a local
// remote given as a relative path resolves the way it would in a shell.
// dest is made absolute first; its parent directory must exist.
func (c *Client) SparseClone(ctx context.Context, remote, dest string) error {
	dest, err := filepath.Abs(dest)
	if err != nil {
		return model.WrapCLIError(model.ExitFilesystemError, "failed to resolve clone directory", err)
	}
	_, err = c.runner.Run(ctx, ".",
		"clone",
		"--no-checkout",
		"--depth", "1",
		"--single-branch",
		"--filter=blob:none",
		"--",
		remote,
		dest,
	)
	return err
}

// EnableSparse switches repoDir to cone-mode sparse checkout and restricts
// it to the given directories.
func (c *Client) EnableSparse(ctx context.Context, repoDir string, dirs ...string) error {
	if _, err := c.runner.Run(ctx, repoDir, "sparse-checkout", "init", "--cone"); err != nil {
		return err
	}
	args := append([]string{"sparse-checkout", "set"}, dirs...)
	_, err := c.runner.Run(ctx, repoDir, args...)
	return err
}

// DefaultBranch returns the short name of the branch HEAD points to.
// Right after a single-branch clone this is the remote's default branch.
func (c *Client) DefaultBranch(ctx context.Context, repoDir string) (string, error) {
	output, err := c.runner.Run(ctx, repoDir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(output)
	if branch == "" {
		return "", model.NewCLIError(model.ExitGitError, "git symbolic-ref returned an empty branch name")
	}
	return branch, nil
}

// Checkout materializes branch in repoDir, limited to the sparse paths.
func (c *Client) Checkout(ctx context.Context, repoDir, branch string) error {
	_, err := c.runner.Run(ctx, repoDir, "checkout", branch, "--")
	return err
}
