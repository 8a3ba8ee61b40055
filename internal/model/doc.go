// Package model defines the domain types and value objects for the
// docsync CLI.
//
// This package contains pure data structures with no external dependencies:
// the run result (SyncResult, FileEntry), the ErrDocsNotFound sentinel, and
// the exit codes (ExitCode) carried by CLIError for process exit handling.
package model
