package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/cli/render"
)

// NewStateCmd creates the state command group
func NewStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and edit the network state file",
	}

	cmd.AddCommand(newStateShowCmd())
	cmd.AddCommand(newStateCheckCmd())
	cmd.AddCommand(newStateRemoveCmd())

	return cmd
}

func newStateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show recorded contracts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowState.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewStateRenderer(cmd.OutOrStdout(), useColor()).RenderShow(result)
		},
	}
}

func newStateCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare recorded contracts with the chain",
		Long: `Check that code exists at every recorded address and that the recorded
implementation of each proxy matches its ERC-1967 implementation slot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CheckState.Run(cmd.Context())
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if err := render.NewStateRenderer(cmd.OutOrStdout(), useColor()).RenderCheck(result); err != nil {
				return err
			}
			if !result.Healthy() {
				return fmt.Errorf("%s state does not match the chain", result.Network)
			}
			return nil
		},
	}
}

func newStateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm [contract]",
		Aliases: []string{"remove"},
		Short:   "Remove a contract from the state file",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			entry, err := app.RemoveStateEntry.Run(cmd.Context(), name)
			if err != nil {
				return err
			}

			return render.NewStateRenderer(cmd.OutOrStdout(), useColor()).RenderRemoved(app.Config.NetworkName(), entry)
		},
	}
}
