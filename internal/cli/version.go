package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the cobra command for `docsync version`.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if IsJSONOutput() {
				data, _ := json.MarshalIndent(map[string]string{
					"version": Version,
					"commit":  Commit,
					"date":    Date,
				}, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "docsync %s\n", versionString())
			return nil
		},
	}
}
