// Package main is the entry point for the docsync CLI.
//
// docsync mirrors the docs folder of a git repository into a local
// directory. It delegates all functionality to the internal/cli package,
// which defines cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively. The default remote repository can be
// baked in the same way, see config.DefaultRemote.
package main

import (
	"github.com/shinji-kodama/docsync/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
