package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treelot/treelotd/internal/crypto"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a fresh operator identity",
	Long: `keygen generates a secp256k1 keypair and prints the derived account ID
alongside the private key. The account ID is what the [contract] admin
setting in the configuration file expects.`,
	RunE: runKeygen,
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	id, priv, err := crypto.NewIdentity()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "account id:  %s\n", id)
	fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\n", hex.EncodeToString(priv.Serialize()))
	return nil
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
