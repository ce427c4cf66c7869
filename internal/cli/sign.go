package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/adapters/signer"
	"github.com/zeitls/ztl-cli/internal/cli/render"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NewSignCmd creates the sign command group for KYC signer approvals
func NewSignCmd() *cobra.Command {
	var keyEnv string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Produce KYC signer approvals",
		Long: `Sign the approvals checked on chain by the auction house (bids) and the
pieces contract (purchases). The key is read from the environment variable
named by --key-env.`,
	}
	cmd.PersistentFlags().StringVar(&keyEnv, "key-env", signer.DefaultKeyEnv, "Environment variable holding the signer private key")

	cmd.AddCommand(&cobra.Command{
		Use:   "bid <bidder>",
		Short: "Approve an address to bid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, func(app *usecase.SignApproval) (*usecase.SignApprovalResult, error) {
				return app.Bid(cmd.Context(), keyEnv, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "purchase <tokenId> <priceEth> <expire>",
		Short: "Approve a single piece purchase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, func(app *usecase.SignApproval) (*usecase.SignApprovalResult, error) {
				return app.Purchase(cmd.Context(), keyEnv, args[0], args[1], args[2])
			})
		},
	})

	var (
		lots     []string
		deadline string
	)
	piecesCmd := &cobra.Command{
		Use:     "pieces",
		Short:   "Approve a batch purchase of pieces",
		Example: `  ztl sign pieces --lot 1:0.1 --lot 2:0.25 --deadline 1700000000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd, func(app *usecase.SignApproval) (*usecase.SignApprovalResult, error) {
				return app.Pieces(cmd.Context(), keyEnv, lots, deadline)
			})
		},
	}
	piecesCmd.Flags().StringArrayVar(&lots, "lot", nil, "Lot as tokenId:priceEth (repeatable)")
	piecesCmd.Flags().StringVar(&deadline, "deadline", "", "Unix time after which the approval expires")
	_ = piecesCmd.MarkFlagRequired("deadline")
	cmd.AddCommand(piecesCmd)

	return cmd
}

func runSign(cmd *cobra.Command, sign func(*usecase.SignApproval) (*usecase.SignApprovalResult, error)) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := sign(app.SignApproval)
	if err != nil {
		return err
	}

	return render.NewSignRenderer(cmd.OutOrStdout(), useColor()).Render(result)
}
