package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sovereign/internal/auth"
	"sovereign/internal/config"
)

var (
	accessKind     string
	accessBase     string
	accessGenerate bool
)

var accessURLCmd = &cobra.Command{
	Use:   "access-url <client-id>",
	Short: "Print a first-visit access link for a client",
	Long: `Prints {base}/{proposals|portal}/{client-id}?token=... using the
configured CLIENT_TOKEN_{ID}. With --generate a fresh token is minted and
the matching env assignment is printed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		clientID := args[0]
		if !auth.ValidScope(clientID) {
			return fmt.Errorf("%q is not a valid client id", clientID)
		}

		token, ok := config.LookupToken(cfg.SecretSource(), clientID)
		if accessGenerate || !ok {
			if !accessGenerate {
				return fmt.Errorf("%s is not set; pass --generate to mint one", config.TokenKey(clientID))
			}
			var err error
			if token, err = auth.GenerateToken(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s=%s\n", config.TokenKey(clientID), token)
		}

		base := accessBase
		if base == "" {
			base = cfg.BaseURL
		}
		link, err := auth.AccessURL(base, clientID, token, auth.PortalKind(accessKind))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

func init() {
	accessURLCmd.Flags().StringVar(&accessKind, "kind", string(auth.KindProposals), "proposals or portal")
	accessURLCmd.Flags().StringVar(&accessBase, "base", "", "base URL (defaults to base_url from config)")
	accessURLCmd.Flags().BoolVar(&accessGenerate, "generate", false, "mint a new token instead of using the configured one")
	rootCmd.AddCommand(accessURLCmd)
}
