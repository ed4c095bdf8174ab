package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the staged build order without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadManifest(); err != nil {
				return err
			}

			plan, err := c.app.Schedule()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, stage := range plan.Stages {
				names := make([]string, len(stage))
				for j, name := range stage {
					names[j] = name.String()
				}
				_, _ = fmt.Fprintf(out, "stage %d: %s\n", i+1, strings.Join(names, ", "))
			}
			return nil
		},
	}
}
