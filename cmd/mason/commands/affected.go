package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newAffectedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "affected [paths...]",
		Short: "Print the units affected by the given changed paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadManifest(); err != nil {
				return err
			}

			affected, err := c.app.PlanIncrementalBuild(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range affected {
				_, _ = fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
