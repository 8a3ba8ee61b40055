package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shinji-kodama/docsync/internal/logger"
)

// Prefix starts the name of every workspace directory.
const Prefix = "docsync-"

// Workspace is a uniquely named temporary directory owned by a single run.
type Workspace struct {
	baseDir string
	path    string
}

// New returns a Workspace that will be created under baseDir
// (os.TempDir() if empty). Nothing is created until Create is called.
func New(baseDir string) *Workspace {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Workspace{baseDir: baseDir}
}

// Token returns a name fragment that is distinct across runs: a UTC
// timestamp for readability followed by a random UUID, so two runs started
// within the same second do not collide.
func Token() string {
	return time.Now().UTC().Format("20060102-150405") + "-" + uuid.NewString()
}

// Create makes the workspace directory. os.Mkdir is used rather than
// MkdirAll so that an already existing path is reported instead of being
// silently shared with another run.
//
// A relative base directory is resolved against the current working
// directory, and Path is always absolute.
func (w *Workspace) Create(ctx context.Context) error {
	if w.path != "" {
		return fmt.Errorf("workspace already created at %s", w.path)
	}
	base, err := filepath.Abs(w.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace base directory: %w", err)
	}
	if err := os.MkdirAll(base, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base directory: %w", err)
	}

	dir := filepath.Join(base, Prefix+Token())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	w.path = dir
	logger.Debug(ctx, "created workspace", zap.String("path", dir))
	return nil
}

// Path returns the workspace directory, or "" before Create.
func (w *Workspace) Path() string {
	return w.path
}

// Cleanup removes the workspace directory. It is safe to call on every exit
// path: before Create and after a previous Cleanup it does nothing.
func (w *Workspace) Cleanup(ctx context.Context) error {
	if w.path == "" {
		return nil
	}

	if err := os.RemoveAll(w.path); err != nil {
		return fmt.Errorf("failed to clean up workspace %s: %w", w.path, err)
	}

	logger.Debug(ctx, "cleaned up workspace", zap.String("path", w.path))
	w.path = ""
	return nil
}
