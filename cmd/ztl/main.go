package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/zeitls/ztl-cli/internal/cli"
	"github.com/zeitls/ztl-cli/internal/config"
	"github.com/zeitls/ztl-cli/internal/domain"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) && len(schemaErr.Issues) > 0 {
			fmt.Fprintln(os.Stderr, schemaErr.Details())
		}
		os.Exit(1)
	}
}
