// Package commands implements the CLI commands for the mason build engine.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/build"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// CLI represents the command line interface for mason.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	builder ports.UnitBuilder
	rootCmd *cobra.Command
}

// New creates a new CLI instance from the application components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mason",
		Short:         "A dependency-aware incremental build engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "Project directory containing the unit manifest")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Maximum concurrent unit builds per stage (0 means one per CPU)")

	cli := &CLI{
		app:     c.App,
		logger:  c.Logger,
		builder: c.Builder,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(cli.newBuildCmd())
	rootCmd.AddCommand(cli.newPlanCmd())
	rootCmd.AddCommand(cli.newAffectedCmd())
	rootCmd.AddCommand(cli.newWatchCmd())
	rootCmd.AddCommand(cli.newCleanCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) projectDir() string {
	dir, _ := c.rootCmd.PersistentFlags().GetString("dir")
	return dir
}

func (c *CLI) jobs() int {
	jobs, _ := c.rootCmd.PersistentFlags().GetInt("jobs")
	return jobs
}

func (c *CLI) loadManifest() error {
	return c.app.LoadManifest(c.projectDir())
}

func printSummary(w io.Writer, result domain.BuildResult) {
	_, _ = fmt.Fprintf(w, "built %d, skipped %d, failed %d in %s\n",
		len(result.SucceededUnits), len(result.SkippedUnits),
		len(result.FailedUnits), result.Duration)

	for _, failed := range result.FailedUnits {
		_, _ = fmt.Fprintf(w, "  %s: %v\n", failed.Name, failed.Err)
	}
}
