package layout

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Title is the label shown in the navigation bar: a small icon next to a
// short text.
type Title struct {
	Icon string `json:"icon" yaml:"icon"`
	Text string `json:"text" yaml:"text"`
}

// Nav groups the navigation bar options.
type Nav struct {
	Title Title `json:"title" yaml:"title"`
}

// Link is one extra navigation entry.
type Link struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// Options is the shared layout configuration. An empty Links list means
// "no extra links beyond the renderer's defaults".
type Options struct {
	Nav   Nav    `json:"nav" yaml:"nav"`
	Links []Link `json:"links" yaml:"links"`
}

// defaultOptions is never handed out directly; Default returns copies.
var defaultOptions = Options{ //nolint: gochecknoglobals
	Nav: Nav{
		Title: Title{
			Icon: "book-open",
			Text: "Documentation",
		},
	},
	Links: []Link{},
}

// Default returns the site's layout options. Each call returns an
// independent copy, so callers cannot mutate the shared declaration.
func Default() Options {
	opts := defaultOptions
	opts.Links = append([]Link{}, defaultOptions.Links...)
	return opts
}

// Encode writes opts to w as YAML or JSON.
func Encode(w io.Writer, opts Options, format string) error {
	if opts.Links == nil {
		opts.Links = []Link{}
	}

	switch format {
	case FormatYAML, "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(opts); err != nil {
			return fmt.Errorf("failed to encode layout as YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode layout as JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unsupported layout format %q (valid: yaml, json)", format)
	}
}
