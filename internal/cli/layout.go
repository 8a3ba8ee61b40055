package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/docsync/internal/layout"
	"github.com/shinji-kodama/docsync/internal/model"
)

// NewLayoutCommand creates the cobra command for `docsync layout`.
//
// It prints the static navigation configuration shared by every page of
// the documentation site, for consumption by the site renderer.
func NewLayoutCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the documentation site's navigation configuration",
		Long: `Print the navigation configuration shared by all documentation pages:
the navigation title (icon and text) and the list of header links.

The output is YAML by default. --json is a shorthand for --format json.

Examples:
  docsync layout
  docsync layout --format json > layout.json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			if IsJSONOutput() && !cmd.Flags().Changed("format") {
				format = layout.FormatJSON
			}
			if err := layout.Encode(cmd.OutOrStdout(), layout.Default(), format); err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to print layout", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", layout.FormatYAML, "Output format: yaml or json")
	return cmd
}
