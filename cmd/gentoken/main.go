// gentoken prints a fresh client access token, ready to be stored as
// CLIENT_TOKEN_{ID}.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sovereign/internal/auth"
	"sovereign/internal/config"
)

var client string

var rootCmd = &cobra.Command{
	Use:          "gentoken",
	Short:        "Generate a 32-byte hex client access token",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := auth.GenerateToken()
		if err != nil {
			return fmt.Errorf("generating token: %w", err)
		}
		id := strings.TrimSpace(client)
		if id == "" {
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}
		if !auth.ValidScope(id) {
			return fmt.Errorf("%q is not a valid client id", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", config.TokenKey(id), token)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&client, "client", "", "client id; prints an env assignment for it")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
