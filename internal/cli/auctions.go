package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
)

// NewAuctionsCmd creates the auctions command
func NewAuctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auctions",
		Short: "List the configured auctions",
		Long: `Unpause the auction house if needed and create every configured lot
that does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CreateAuctions.Run(cmd.Context())
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewAuctionsRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}
}
