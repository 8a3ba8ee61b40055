package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shinji-kodama/docsync/internal/config"
	"github.com/shinji-kodama/docsync/internal/docsync"
	"github.com/shinji-kodama/docsync/internal/gitcli"
	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/metrics"
	"github.com/shinji-kodama/docsync/internal/model"
)

// syncFlags holds the parsed command-line flags for sync-like commands.
// Flags left unset do not override the configuration.
type syncFlags struct {
	// remote is the repository to clone.
	remote string

	// target is the local directory receiving the docs.
	target string

	// subdir is the repository directory to extract.
	subdir string

	// metricsFile is a node-exporter textfile written after every run.
	metricsFile string
}

// NewSyncCommand creates the cobra command for `docsync sync`.
func NewSyncCommand() *cobra.Command {
	flags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the docs folder into the target directory (default action)",
		Long: `Clone the remote repository into a temporary directory, extract its docs
folder and replace the target directory with it.

Every run starts from a fresh clone; nothing is reused between runs. The
temporary directory is removed whether the run succeeds or fails.

Examples:
  docsync sync --remote https://github.com/example/site.git
  docsync sync --target website/content/docs --subdir documentation
  DOCSYNC_REMOTE=git@github.com:example/site.git docsync --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, flags)
		},
	}

	addSyncFlags(cmd, flags)
	return cmd
}

// addSyncFlags registers the flags shared by the root, sync and schedule
// commands.
func addSyncFlags(cmd *cobra.Command, flags *syncFlags) {
	cmd.Flags().StringVar(&flags.remote, "remote", "", "Repository to clone (overrides DOCSYNC_REMOTE)")
	cmd.Flags().StringVar(&flags.target, "target", "", "Local directory receiving the docs (default: content/docs)")
	cmd.Flags().StringVar(&flags.subdir, "subdir", "", "Repository directory to extract (default: docs)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
}

// loadConfig reads the configuration and applies the flags that were set
// explicitly on cmd.
func loadConfig(cmd *cobra.Command, flags *syncFlags) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Only flags given on the command line override lower-precedence
	// sources; an unset flag's zero value must not clear a config value.
	if cmd.Flags().Changed("remote") {
		cfg.Remote = flags.remote
	}
	if cmd.Flags().Changed("target") {
		cfg.Target = flags.target
	}
	if cmd.Flags().Changed("subdir") {
		cfg.Subdir = flags.subdir
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.File = flags.metricsFile
	}
	if verbose {
		cfg.Log.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging builds the process logger from cfg and stores it in ctx.
func setupLogging(ctx context.Context, cfg *config.Config) (context.Context, error) {
	l, err := logger.New(cfg.Log.Format, cfg.Log.Verbose)
	if err != nil {
		return ctx, model.WrapCLIError(model.ExitConfigError, "failed to set up logging", err)
	}
	logger.Setup(l)
	return logger.WithLogger(ctx, l), nil
}

func newSyncer(cfg *config.Config) *docsync.Syncer {
	return docsync.New(gitcli.NewExecRunner(cfg.Git), docsync.Options{
		Remote:  cfg.Remote,
		Target:  cfg.Target,
		Subdir:  cfg.Subdir,
		TempDir: cfg.TempDir,
	})
}

// runSync executes a single docs sync and prints its result.
func runSync(cmd *cobra.Command, flags *syncFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	ctx, err := setupLogging(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Get(ctx).Sync() }()

	res, err := syncOnce(ctx, newSyncer(cfg), metrics.NewRecorder(), cfg.Metrics.File)
	if err != nil {
		return err
	}

	return printSyncResult(cmd.OutOrStdout(), res)
}

// syncOnce runs s once and records the outcome in recorder. The metrics
// textfile, when configured, is written after every run, successful or
// not; a failure to write it is logged and does not fail the run.
func syncOnce(ctx context.Context, s *docsync.Syncer, recorder *metrics.Recorder, metricsFile string) (*model.SyncResult, error) {
	started := time.Now()
	res, err := s.Sync(ctx)

	files := 0
	if res != nil {
		files = len(res.Files)
	}
	recorder.ObserveRun(time.Now(), time.Since(started), files, err)

	if metricsFile != "" {
		if werr := recorder.WriteTextfile(metricsFile); werr != nil {
			logger.Warn(ctx, "could not write metrics", zap.String("file", metricsFile), zap.Error(werr))
		}
	}
	return res, err
}

// syncResultJSON is the JSON output of a successful sync.
type syncResultJSON struct {
	Remote          string            `json:"remote"`
	Branch          string            `json:"branch"`
	Subdir          string            `json:"subdir"`
	Target          string            `json:"target"`
	StartedAt       time.Time         `json:"startedAt"`
	DurationSeconds float64           `json:"durationSeconds"`
	Files           []model.FileEntry `json:"files"`
}

// printSyncResult writes res as JSON or as a human-readable summary,
// depending on the --json flag.
func printSyncResult(w io.Writer, res *model.SyncResult) error {
	if IsJSONOutput() {
		out := syncResultJSON{
			Remote:          gitcli.Redact(res.Remote),
			Branch:          res.Branch,
			Subdir:          res.Subdir,
			Target:          res.Target,
			StartedAt:       res.StartedAt,
			DurationSeconds: res.Duration.Seconds(),
			Files:           res.Files,
		}
		// Ensure "files" is [] rather than null.
		if out.Files == nil {
			out.Files = []model.FileEntry{}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "Synced %s/ from %s (branch %s) into %s\n",
		res.Subdir, gitcli.Redact(res.Remote), res.Branch, res.Target)
	fmt.Fprintf(w, "%d files in %s\n", len(res.Files), res.Duration.Round(time.Millisecond))
	if len(res.Files) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Options(
		tablewriter.WithHeader([]string{"Path", "Size", "Title"}),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
	)
	for _, f := range res.Files {
		if err := table.Append([]string{f.Path, humanize.IBytes(uint64(f.Size)), orDash(f.Title)}); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
