// Package cli implements the cobra-based CLI commands for docsync.
//
// Each subcommand (sync, layout, schedule, version) is defined in its own
// file within this package. This file defines the root command, which runs
// a sync when invoked without a subcommand, and handles global flags and
// exit codes.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/docsync/internal/config"
	"github.com/shinji-kodama/docsync/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// Errors are written as JSON objects on stderr as well.
	jsonOutput bool

	// verbose enables debug logging, including every git invocation.
	verbose bool

	// configPath is an explicit config file. Empty means the default
	// lookup in the working directory (see config.DefaultFiles).
	configPath string
)

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Invoked without a subcommand, the root command performs a single docs
// sync, so `docsync` with zero arguments does the whole job. The same
// action is available explicitly as `docsync sync`.
func NewRootCommand() *cobra.Command {
	flags := &syncFlags{}

	rootCmd := &cobra.Command{
		Use:   "docsync",
		Short: "Mirror the docs folder of a git repository into a local directory",
		Long: `docsync fetches the docs folder of a remote git repository and mirrors it
into a local directory (content/docs by default).

Only the docs folder of the default branch is downloaded: the clone is
shallow, blob-filtered and restricted with sparse checkout. The previous
contents of the target directory are replaced only when the run succeeds.

` + config.Usage(),

		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: versionString(),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags)
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: docsync.yaml, docsync.yml, docsync.jsonc or docsync.json if present)")

	addSyncFlags(rootCmd, flags)

	rootCmd.AddCommand(NewSyncCommand())
	rootCmd.AddCommand(NewLayoutCommand())
	rootCmd.AddCommand(NewScheduleCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command and exits the process with the resulting
// exit code. This is the main entry point called from main.go.
//
// SIGINT and SIGTERM cancel the command's context: a running git process
// is killed and the temporary state is cleaned up before exiting.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, rootCmd, os.Stderr)
	stop()
	os.Exit(int(code))
}

// run executes rootCmd and translates its error into an exit code,
// printing the error to stderr.
func run(ctx context.Context, rootCmd *cobra.Command, stderr io.Writer) model.ExitCode {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return model.ExitSuccess
	}
	printError(stderr, err)
	return model.ExitCodeOf(err)
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, err error) {
	message, detail := err.Error(), ""
	// A top-level CLIError is split into its message and the underlying
	// cause. Joined errors (a failed run plus a failed cleanup) are shown
	// as a whole.
	if cliErr, ok := err.(*model.CLIError); ok {
		message = cliErr.Message
		if cliErr.Err != nil {
			detail = cliErr.Err.Error()
		}
	}

	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"code":    int(model.ExitCodeOf(err)),
				"message": message,
			},
		}
		if detail != "" {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = detail
			}
		}
		// stderr is used for errors even in JSON mode, because stdout
		// is reserved for successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if detail != "" {
		fmt.Fprintf(w, "Error: %s: %s\n", message, detail)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
