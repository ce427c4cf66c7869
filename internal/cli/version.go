package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/zeitls/ztl-cli/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ztl",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ztl version %s (commit %s, built %s, %s/%s)\n",
				config.Version, config.Commit, config.Date, runtime.GOOS, runtime.GOARCH)
		},
	}
}
