package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NewUpgradeCmd creates the upgrade command
func NewUpgradeCmd() *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "upgrade [contract]",
		Short: "Upgrade a proxied contract to a new implementation",
		Long: `Deploy a new implementation and point the proxy recorded in the network
state at it. Without a contract name an upgradeable contract is selected
interactively.

Examples:
  ztl upgrade ZtlDevilsAuctionHouse --network goerli
  ztl upgrade ZtlDevilsTreasury --artifact ZtlDevilsTreasuryV2 --network goerli`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.UpgradeContractParams{Artifact: artifact}
			if len(args) > 0 {
				params.Name = args[0]
			}

			result, err := app.UpgradeContract.Run(cmd.Context(), params)
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewUpgradeRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact of the new implementation (defaults to the contract name)")

	return cmd
}
