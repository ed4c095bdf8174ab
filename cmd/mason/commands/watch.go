package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/adapters/watcher"
	"go.trai.ch/mason/internal/core/domain"
)

// debounceWindow coalesces editor save bursts into one build.
const debounceWindow = 300 * time.Millisecond

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild affected units whenever source files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.loadManifest(); err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			w, err := watcher.NewWatcher()
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			if err := w.Start(ctx, c.projectDir()); err != nil {
				return err
			}

			rebuild := func(paths []string) {
				result, err := c.app.Run(ctx, paths, c.builder, c.jobs())
				if err != nil && !errors.Is(err, domain.ErrBuildExecutionFailed) {
					c.logger.Error(err)
					return
				}
				printSummary(out, result)
			}

			// Full build before entering the loop so the cache is warm.
			rebuild(nil)

			debouncer := watcher.NewDebouncer(debounceWindow, rebuild)
			for event := range w.Events() {
				debouncer.Add(event.Path)
			}
			return nil
		},
	}
}
