// Package gitcli drives the git command-line client for docsync.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library (e.g., go-git)
//     because filtered clones (--filter=blob:none) and cone-mode sparse
//     checkout are only available in the git CLI.
//   - Every invocation is synchronous and passes its working directory with
//     `git -C <dir>`, so the process's own working directory never changes.
//   - Every failure is a model.CLIError with ExitGitError. Network,
//     authentication and local repository errors are reported the same way.
package gitcli
