package cli

import (
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
)

// NewSetupCmd creates the setup command
func NewSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Initialize deployed contracts",
		Long: `Link the token with the auction house, push token metadata, mint
Zeitls keys to the configured holders and register treasury affiliates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetupContracts.Run(cmd.Context())
			stopProgress(cmd)
			if err != nil {
				return err
			}

			return render.NewSetupRenderer(cmd.OutOrStdout(), useColor()).Render(result)
		},
	}
}
