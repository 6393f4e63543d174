// Package commands implements the CLI commands for the extbuild tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/build"
	"go.trai.ch/extbuild/internal/core/domain"
)

// CLI represents the command line interface for extbuild.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	configFile string
	jsonLogs   bool
	onJSONLogs func(enable bool)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	Status(ctx context.Context, opts app.StatusOptions) ([]domain.BuildInfo, error)
	Steps() []domain.StepRecord
}

// Option configures a CLI.
type Option func(*CLI)

// WithJSONLogs registers the callback switching the logger to JSON output
// when --json is given.
func WithJSONLogs(fn func(enable bool)) Option {
	return func(c *CLI) {
		c.onJSONLogs = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "extbuild",
		Short:         "Build native Python extensions with CMake and vcpkg",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", domain.ConfigFileName,
		"Configuration file, searched upwards from the working directory")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Emit logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.onJSONLogs != nil {
			c.onJSONLogs(c.jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
