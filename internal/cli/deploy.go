package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the core contracts",
		Long: `Deploy ZtlDevils, ZtlDevilsWhitelist, ZtlDevilsTreasury and
ZtlDevilsAuctionHouse in order. Upgradeable contracts are deployed behind an
ERC-1967 proxy. Every address is recorded in state.<network>.json.

Examples:
  ztl deploy --network goerli
  ztl deploy --network goerli --only ZtlDevilsAuctionHouse
  ztl deploy --network mainnet --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployContracts.Run(cmd.Context(), usecase.DeployContractsParams{Only: only})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Deploy only the named contracts")

	return cmd
}

// NewDeployPiecesCmd creates the deploy-pieces command
func NewDeployPiecesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy-pieces",
		Short: "Deploy the pieces contract",
		Long: `Deploy ZtlDevilsPieces. The treasury must already be recorded in the
network state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployPieces.Run(cmd.Context())
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}
}
