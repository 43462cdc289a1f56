package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sovereign/internal/auth"
)

var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret",
	Short: "Read a password from stdin and print its bcrypt hash",
	Long: `The printed hash can be used in place of the plain value for
SITE_PASSWORD or {ID}_PASSWORD. Only the first line of stdin is read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading secret: %w", err)
		}
		hash, err := auth.HashSecret(strings.TrimRight(line, "\r\n"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashSecretCmd)
}
