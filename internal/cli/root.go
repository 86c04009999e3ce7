// Package cli holds the treelotd command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "treelotd",
	Short: "treelotd - tree lot marketplace settlement daemon",
	Long: `treelotd runs the settlement and certification engine for tree lot
supply chains: the offer catalog, order escrow, lot preparation and
confirmation, manager certification, and harvest profit distribution,
served over JSON-RPC and gRPC.`,
	Version: "0.1.0-dev",
}

// Execute runs the command tree. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
}
