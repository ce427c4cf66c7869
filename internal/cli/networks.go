package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List available networks from ztl.toml",
		Long: `List all networks configured in the [networks] section of ztl.toml,
plus the built-in hardhat and localhost networks, with the number of
contracts recorded in each network state file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}
}
