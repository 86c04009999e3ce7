package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/treelot/treelotd/internal/config"
	"github.com/treelot/treelotd/internal/daemon"
)

// serverCmd starts the daemon. It is also the default action when no
// subcommand is given.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the treelotd server",
	Long: `Start the treelotd server, which restores the latest saved state (or
initializes genesis from the [contract] config section), then serves the
JSON-RPC and gRPC endpoints until interrupted.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.RunE = runServer
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.LoadConfig(configFile)
	} else {
		cfg, err = config.LoadDefaultConfig()
	}
	if err != nil {
		return err
	}

	d, err := daemon.New(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return d.Run(ctx)
}
