package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/adapters/tui" //nolint:depguard // Rendering belongs to the CLI edge
	"go.trai.ch/extbuild/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the recorded builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := c.app.Status(cmd.Context(), app.StatusOptions{ConfigFile: c.configFile})
			if err != nil {
				return err
			}
			return tui.NewStatusView(cmd.OutOrStdout()).Render(infos)
		},
	}
}
