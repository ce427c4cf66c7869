package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/adapters/progress"
	"github.com/zeitls/ztl-cli/internal/app"
	"github.com/zeitls/ztl-cli/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// progressKey is the context key for the progress sink
	progressKey contextKey = "progress"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ztl",
		Short: "Deployment orchestrator for the Zeitls Devils contracts",
		Long: `ztl deploys, configures and verifies the Zeitls Devils contracts
(token, whitelist, treasury, auction house and pieces) and records every
deployed address in a per-network state file (state.<network>.json).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// Signing only needs a key, not a project
				if !isProjectOptional(cmd) {
					return err
				}
				if projectRoot, err = os.Getwd(); err != nil {
					return err
				}
			}

			// Set up viper
			v := config.SetupViper(projectRoot, cmd)
			if isNonInteractive() {
				v.Set("non_interactive", true)
			}

			interactive := !v.GetBool("non_interactive")
			if !interactive {
				color.NoColor = true
			}
			sink := progress.NewTaskProgress(cmd.OutOrStdout(), interactive)

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			ctx = context.WithValue(ctx, progressKey, sink)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., goerli, mainnet)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Show what would be sent without sending transactions")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 30m)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands, in the order they are run against a fresh network
	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewSetupCmd(),
		NewDeployPiecesCmd(),
		NewVerifyCmd(),
		NewAuctionsCmd(),
		NewUpgradeCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{
		NewStateCmd(),
		NewNetworksCmd(),
		NewSignCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// isProjectOptional reports whether cmd can run outside a ztl project
func isProjectOptional(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "sign" {
			return true
		}
	}
	return false
}

// isNonInteractive checks the environment for CI style runs
func isNonInteractive() bool {
	return os.Getenv("ZTL_NON_INTERACTIVE") == "true" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("NO_COLOR") != ""
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// stopProgress clears any running spinner before results are rendered
func stopProgress(cmd *cobra.Command) {
	if sink, ok := cmd.Context().Value(progressKey).(*progress.TaskProgress); ok {
		sink.Done()
	}
}

// useColor reports whether renderers should colour their output
func useColor() bool {
	return !color.NoColor
}
