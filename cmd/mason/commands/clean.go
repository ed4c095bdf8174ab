package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [units...]",
		Short: "Drop cache entries, forcing the next build to rerun",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.app.ClearCache()
			}
			return c.app.InvalidateUnits(args)
		},
	}
	return cmd
}
