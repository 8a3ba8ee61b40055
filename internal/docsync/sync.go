package docsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/shinji-kodama/docsync/internal/fsutil"
	"github.com/shinji-kodama/docsync/internal/gitcli"
	"github.com/shinji-kodama/docsync/internal/inventory"
	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/model"
	"github.com/shinji-kodama/docsync/internal/workspace"
)

// cloneDir is the name of the clone inside the workspace.
const cloneDir = "repo"

// Options configures a Syncer.
type Options struct {
	// Remote is the repository address handed to git clone.
	Remote string

	// Target is the local directory that receives the subtree.
	// Relative paths are resolved against the working directory.
	Target string

	// Subdir is the slash-separated repository directory to extract.
	// Defaults to model.DefaultSubdir.
	Subdir string

	// TempDir is the parent of the workspace. Defaults to os.TempDir().
	TempDir string
}

// Syncer runs docs syncs. It holds no state between runs, so one Syncer
// can be reused, e.g. by a schedule.
type Syncer struct {
	git  *gitcli.Client
	opts Options
}

// New returns a Syncer that drives git through runner.
func New(runner gitcli.Runner, opts Options) *Syncer {
	if opts.Subdir == "" {
		opts.Subdir = model.DefaultSubdir
	}
	if opts.Target == "" {
		opts.Target = model.DefaultTarget
	}
	return &Syncer{git: gitcli.NewClient(runner), opts: opts}
}

// run holds the paths of a single Sync call.
type run struct {
	target  string
	repo    string
	staging string
	backup  string
	branch  string
}

// Sync performs one complete run.
//
// On success the target mirrors the subdirectory of the remote's default
// branch. On failure the returned error carries an exit code (see
// model.ExitCodeOf) and the target still holds what it held before.
// A failure to remove temporary state is joined into the returned error,
// so it also fails an otherwise successful run.
func (s *Syncer) Sync(ctx context.Context) (res *model.SyncResult, err error) {
	started := time.Now()

	if err := model.ValidateSubdir(s.opts.Subdir); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid subdir", err)
	}
	target, err := filepath.Abs(s.opts.Target)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFilesystemError, "failed to resolve target directory", err)
	}

	ctx = logger.WithFields(ctx, zap.String("remote", gitcli.Redact(s.opts.Remote)))
	logger.Info(ctx, "starting docs sync", zap.String("subdir", s.opts.Subdir), zap.String("target", target))

	ws := workspace.New(s.opts.TempDir)
	if err := ws.Create(ctx); err != nil {
		return nil, model.WrapCLIError(model.ExitFilesystemError, "failed to create temporary directory", err)
	}
	defer func() {
		if cerr := ws.Cleanup(ctx); cerr != nil {
			err = errors.Join(err, model.WrapCLIError(model.ExitFilesystemError, "cleanup failed", cerr))
		}
	}()

	token := workspace.Token()
	r := &run{
		target:  target,
		repo:    filepath.Join(ws.Path(), cloneDir),
		staging: fsutil.HiddenSibling(target, ".staging-"+token),
		backup:  fsutil.HiddenSibling(target, ".previous-"+token),
	}
	defer func() {
		// After a successful swap the staging path no longer exists and
		// RemoveAll returns nil.
		if rerr := os.RemoveAll(r.staging); rerr != nil {
			err = errors.Join(err, model.WrapCLIError(model.ExitFilesystemError, "cleanup failed", rerr))
		}
		// The backup is the only copy of the previous docs while target is
		// missing, which happens when a swap could not be rolled back.
		if exists, _ := fsutil.Exists(r.target); !exists {
			if left, _ := fsutil.Exists(r.backup); left {
				logger.Warn(ctx, "previous target contents kept", zap.String("path", r.backup))
			}
			return
		}
		if rerr := os.RemoveAll(r.backup); rerr != nil {
			err = errors.Join(err, model.WrapCLIError(model.ExitFilesystemError, "cleanup failed", rerr))
		}
	}()

	if err := s.fetch(ctx, r); err != nil {
		return nil, err
	}

	// Diagnostic only: what the sparse checkout materialized.
	inventory.Log(ctx, "materialized in clone", inventory.Collect(ctx, r.repo))

	if err := s.materialize(ctx, r); err != nil {
		return nil, err
	}

	files := inventory.Collect(ctx, r.target)
	inventory.Log(ctx, "synced to target", files)

	res = &model.SyncResult{
		Remote:    s.opts.Remote,
		Branch:    r.branch,
		Subdir:    s.opts.Subdir,
		Target:    r.target,
		Files:     files,
		StartedAt: started.UTC(),
		Duration:  time.Since(started),
	}
	logger.Info(ctx, "docs sync finished",
		zap.String("branch", r.branch),
		zap.Int("files", len(files)),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// fetch clones the remote into the workspace and checks out the
// subdirectory of its default branch.
func (s *Syncer) fetch(ctx context.Context, r *run) error {
	logger.Info(ctx, "cloning repository")
	if err := s.git.SparseClone(ctx, s.opts.Remote, r.repo); err != nil {
		return err
	}

	logger.Info(ctx, "configuring sparse checkout", zap.String("subdir", s.opts.Subdir))
	if err := s.git.EnableSparse(ctx, r.repo, s.opts.Subdir); err != nil {
		return err
	}

	branch, err := s.git.DefaultBranch(ctx, r.repo)
	if err != nil {
		return err
	}
	r.branch = branch

	logger.Info(ctx, "checking out default branch", zap.String("branch", branch))
	return s.git.Checkout(ctx, r.repo, branch)
}

// materialize copies the extracted subtree to the staging directory and
// swaps it into the target path.
func (s *Syncer) materialize(ctx context.Context, r *run) error {
	src := filepath.Join(r.repo, filepath.FromSlash(s.opts.Subdir))
	if !fsutil.IsDir(src) {
		return model.WrapCLIError(model.ExitDocsNotFound,
			fmt.Sprintf("%s/ is missing from branch %s of %s", path.Clean(s.opts.Subdir), r.branch, gitcli.Redact(s.opts.Remote)),
			model.ErrDocsNotFound)
	}

	if err := os.MkdirAll(filepath.Dir(r.target), 0o755); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError, "failed to create target parent directory", err)
	}

	logger.Info(ctx, "copying docs", zap.String("staging", r.staging))
	if err := fsutil.CopyTree(src, r.staging, fsutil.SkipGitMetadata); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError, "failed to copy docs", err)
	}

	if exists, _ := fsutil.Exists(r.target); exists {
		logger.Info(ctx, "replacing previous target contents", zap.String("target", r.target))
	}
	if err := fsutil.ReplaceDir(r.staging, r.target, r.backup); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError, "failed to replace target directory", err)
	}
	return nil
}
