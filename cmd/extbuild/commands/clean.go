package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove generated build files and build records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			buildTemp, _ := cmd.Flags().GetString("build-temp")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigFile: c.configFile,
				BuildTemp:  buildTemp,
				All:        all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Also remove the vcpkg checkout")
	cmd.Flags().StringP("build-temp", "t", "", "Directory for temporary build files, as passed to build")

	return cmd
}
