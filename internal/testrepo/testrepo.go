package testrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Repo is a committed test repository.
type Repo struct {
	// Dir is the repository working directory.
	Dir string

	// URL is the file:// address of Dir.
	URL string
}

// New creates a repository containing files (slash-separated path to
// content) in a single commit on branch "main".
func New(t *testing.T, files map[string]string) *Repo {
	t.Helper()

	dir := t.TempDir()
	Git(t, dir, "init", "--initial-branch=main")
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test User")
	Git(t, dir, "config", "commit.gpgsign", "false")
	// Lets --filter=blob:none clones negotiate the filter instead of
	// printing a "filtering not recognized by server" warning.
	Git(t, dir, "config", "uploadpack.allowFilter", "true")

	r := &Repo{Dir: dir, URL: "file://" + filepath.ToSlash(dir)}
	r.Commit(t, "initial commit", files)
	return r
}

// Commit writes files into the working tree and commits them.
func (r *Repo) Commit(t *testing.T, message string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		p := filepath.Join(r.Dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	Git(t, r.Dir, "add", "-A")
	Git(t, r.Dir, "commit", "--allow-empty", "-m", message)
}

// Git runs a git command in dir and fails the test immediately if it exits
// with a non-zero status. It returns the combined output.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

// ReadTree returns every regular file under root as a map from
// slash-separated relative path to content.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()

	files := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}
