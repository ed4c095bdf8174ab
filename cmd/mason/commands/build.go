package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build all units, or only those affected by changed paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadManifest(); err != nil {
				return err
			}

			// A nil change set requests a full build; --changed narrows it.
			var changed []string
			if cmd.Flags().Changed("changed") {
				changed, _ = cmd.Flags().GetStringSlice("changed")
			}

			result, err := c.app.Run(cmd.Context(), changed, c.builder, c.jobs())
			printSummary(cmd.OutOrStdout(), result)
			return err
		},
	}
	cmd.Flags().StringSlice("changed", nil, "Changed file paths to narrow the build to affected units")
	return cmd
}
