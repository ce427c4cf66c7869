package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NewVerifyCmd creates the verify-etherscan command
func NewVerifyCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:     "verify-etherscan",
		Aliases: []string{"verify"},
		Short:   "Verify deployed contracts on the block explorer",
		Long: `Verify every contract recorded in the network state. Upgradeable
contracts have their implementation verified before the proxy. Contracts the
explorer already knows are skipped when an API key is configured.

Examples:
  ztl verify-etherscan --network goerli
  ztl verify --network goerli --only ZtlDevilsTreasury
  ztl verify --network goerli --dry-run   # print the commands only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.VerifyContracts.Run(cmd.Context(), usecase.VerifyContractsParams{Only: only})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewVerifyRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "Verify only the named contracts")

	return cmd
}
