package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/adapters/tui" //nolint:depguard // Rendering belongs to the CLI edge
	"go.trai.ch/extbuild/internal/app"
	"go.trai.ch/extbuild/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var overrides domain.Overrides

	cmd := &cobra.Command{
		Use:   "build [extensions...]",
		Short: "Provision dependencies and compile the native extensions",
		Long: "Build checks for cmake, provisions vcpkg and the dependency manifest, " +
			"then configures and compiles each extension into the packaging lib directory. " +
			"Without arguments every configured extension is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides.Extensions = args
			err := c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigFile: c.configFile,
				Overrides:  overrides,
			})

			// The summary also shows which step stopped a failed build.
			// JSON logs are meant for machines, so it is left out there.
			if steps := c.app.Steps(); len(steps) > 0 && !c.jsonLogs {
				err = errors.Join(err, tui.NewStepView(cmd.OutOrStdout()).Render(steps))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&overrides.BuildTemp, "build-temp", "t", "", "Directory for temporary build files")
	cmd.Flags().StringVarP(&overrides.BuildLib, "build-lib", "b", "", "Directory the extensions are placed in")
	cmd.Flags().IntVarP(&overrides.Jobs, "parallel", "j", 0, "Number of parallel build jobs (0 lets the build tool decide)")
	cmd.Flags().BoolVarP(&overrides.Debug, "debug", "g", false, "Compile with debugging information")
	cmd.Flags().StringVar(&overrides.Triplet, "triplet", "", "vcpkg target triplet")

	return cmd
}
