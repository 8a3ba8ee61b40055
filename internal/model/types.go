// Package model defines the domain types for the docsync CLI.
//
// These types are passed between the git runner, the sync orchestrator and
// the CLI output layer. Nothing here is persisted; a SyncResult only lives
// for the duration of one run.
package model

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// DefaultSubdir is the repository directory that is extracted when no
// other subdirectory is configured.
const DefaultSubdir = "docs"

// DefaultTarget is the local directory the extracted subtree is written to.
const DefaultTarget = "content/docs"

// ErrDocsNotFound reports that the expected subdirectory was absent from the
// sparse checkout. It is a data-integrity failure, not a transient one: the
// remote's default branch has no such directory, or the sparse filter did not
// select it.
var ErrDocsNotFound = errors.New("docs folder not found in repository")

// FileEntry describes one file materialized at the target directory.
type FileEntry struct {
	// Path is the slash-separated path relative to the target directory.
	Path string `json:"path"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Title is the first level-1 heading of a Markdown page.
	// Empty for other files or pages without a heading.
	Title string `json:"title,omitempty"`
}

// SyncResult summarizes a successful docs sync run.
type SyncResult struct {
	// Remote is the repository address that was cloned.
	Remote string `json:"remote"`

	// Branch is the default branch resolved after the clone.
	Branch string `json:"branch"`

	// Subdir is the repository directory that was extracted.
	Subdir string `json:"subdir"`

	// Target is the absolute path of the materialized directory.
	Target string `json:"target"`

	// Files lists the files present at the target after the run.
	// Enumeration is best-effort, so an empty list does not imply an
	// empty target.
	Files []FileEntry `json:"files"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration `json:"duration"`
}

// ValidateSubdir checks that a repository subdirectory is a single clean
// relative path that cone-mode sparse checkout can select.
func ValidateSubdir(subdir string) error {
	if subdir == "" {
		return fmt.Errorf("subdirectory must not be empty")
	}
	if strings.Contains(subdir, `\`) {
		return fmt.Errorf("invalid subdirectory %q: use forward slashes", subdir)
	}
	if strings.HasPrefix(subdir, "/") {
		return fmt.Errorf("invalid subdirectory %q: must be relative to the repository root", subdir)
	}
	clean := path.Clean(subdir)
	if clean != subdir || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("invalid subdirectory %q: must be a clean path inside the repository", subdir)
	}
	if strings.ContainsAny(subdir, "*?[") {
		return fmt.Errorf("invalid subdirectory %q: cone mode does not accept patterns", subdir)
	}
	for _, part := range strings.Split(clean, "/") {
		if part == ".git" {
			return fmt.Errorf("invalid subdirectory %q: must not select git metadata", subdir)
		}
	}
	return nil
}

// ExitCode defines the process exit codes of the CLI.
// Scripts and CI pipelines can branch on them; no other machine-readable
// error output is produced.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the configuration could not be loaded or
	// is incomplete (for example, no remote repository configured).
	ExitConfigError ExitCode = 2

	// ExitGitError indicates a git invocation failed. Network,
	// authentication and local repository errors are not distinguished.
	ExitGitError ExitCode = 5

	// ExitDocsNotFound indicates the remote has no docs folder on its
	// default branch.
	ExitDocsNotFound ExitCode = 8

	// ExitFilesystemError indicates a local copy, delete or rename failed.
	ExitFilesystemError ExitCode = 9
)

// CLIError is an error that carries an exit code.
// The CLI layer translates it into the process exit status.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the message, followed by the underlying error if present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeOf returns the exit code carried by the first CLIError in err's
// chain, or ExitGeneralError when there is none. A nil error maps to
// ExitSuccess.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
