package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/docsync/internal/logger"
	"github.com/shinji-kodama/docsync/internal/model"
)

// DefaultRemote is the repository synced when nothing else is configured.
// Release builds set it with
// -ldflags "-X github.com/shinji-kodama/docsync/internal/config.DefaultRemote=<url>".
var DefaultRemote = "" //nolint: gochecknoglobals

// DefaultFiles are looked up in the working directory, in order, when no
// config file is given explicitly.
var DefaultFiles = []string{"docsync.yaml", "docsync.yml", "docsync.jsonc", "docsync.json"} //nolint: gochecknoglobals

// EnvFiles are loaded into the process environment when present. Variables
// that are already set are not overwritten.
var EnvFiles = []string{".env", ".env.local"} //nolint: gochecknoglobals

// Config is the complete docsync configuration.
type Config struct {
	// Remote is the repository address passed to git clone.
	Remote string `env:"DOCSYNC_REMOTE" env-description:"repository to clone" yaml:"remote"`

	// Target is the local directory that receives the extracted subtree.
	Target string `env:"DOCSYNC_TARGET" env-default:"content/docs" env-description:"local directory receiving the docs" yaml:"target"`

	// Subdir is the repository directory to extract.
	Subdir string `env:"DOCSYNC_SUBDIR" env-default:"docs" env-description:"repository directory to extract" yaml:"subdir"`

	// Git is the git executable.
	Git string `env:"DOCSYNC_GIT" env-default:"git" env-description:"git executable" yaml:"git"`

	// TempDir is where workspaces are created. Empty means os.TempDir().
	TempDir string `env:"DOCSYNC_TEMP_DIR" env-description:"parent of the temporary clone" yaml:"tempDir"`

	// Log contains logging options.
	Log struct {
		// Format is "console" or "json".
		Format string `env:"DOCSYNC_LOG_FORMAT" env-default:"console" env-description:"console or json" yaml:"format"`
		// Verbose enables debug logging, including every git invocation.
		Verbose bool `env:"DOCSYNC_VERBOSE" env-description:"debug logging" yaml:"verbose"`
	} `yaml:"log"`

	// Metrics contains run metrics options.
	Metrics struct {
		// File is a node-exporter textfile written after every run.
		// Empty disables metrics output.
		File string `env:"DOCSYNC_METRICS_FILE" env-description:"textfile for run metrics" yaml:"file"`
	} `yaml:"metrics"`

	// Schedule contains options for the schedule command.
	Schedule struct {
		// Every is the interval between two runs.
		Every time.Duration `env:"DOCSYNC_SCHEDULE_EVERY" env-default:"1h" env-description:"interval of the schedule command" yaml:"every"`
	} `yaml:"schedule"`
}

// Load builds the configuration. path is an explicit config file; when it
// is empty the first existing file of DefaultFiles is used, if any.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to load .env file", err)
	}

	var cfg Config

	if path == "" {
		path = findDefaultFile()
	}
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError, "could not read config", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "could not read environment", err)
	}

	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	return &cfg, nil
}

// Validate checks that the configuration can drive a sync.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Remote) == "" {
		return model.NewCLIError(model.ExitConfigError,
			"remote repository is not configured (set --remote, DOCSYNC_REMOTE or remote in the config file)")
	}
	if strings.TrimSpace(c.Target) == "" {
		return model.NewCLIError(model.ExitConfigError, "target directory must not be empty")
	}
	if err := model.ValidateSubdir(c.Subdir); err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid subdir", err)
	}
	switch c.Log.Format {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid log format %q (valid: console, json)", c.Log.Format))
	}
	if c.Schedule.Every < 0 {
		return model.NewCLIError(model.ExitConfigError, "schedule interval must not be negative")
	}
	return nil
}

// Usage returns the environment variable help generated from the struct tags.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json", ".jsonc":
		// Comments and trailing commas are allowed in JSON config files.
		// The cleaned document is decoded as YAML (a superset of JSON) so
		// both formats share the yaml tags and duration strings like "30m".
		if err := yaml.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file %s (valid extensions: .yaml, .yml, .json, .jsonc)", path)
	}
	return nil
}

func findDefaultFile() string {
	for _, name := range DefaultFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

func loadEnvFiles() error {
	for _, name := range EnvFiles {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
