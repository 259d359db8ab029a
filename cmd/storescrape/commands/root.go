// Package commands implements the storescrape CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "configs/storescrape.yaml"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "storescrape",
		Short:         "storescrape fetches store listings and writes them as normalized JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCmd(), newReportCmd())

	return rootCmd
}
