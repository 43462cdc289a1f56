package main

import (
	"os"

	"github.com/spf13/cobra"

	"sovereign/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sovereign",
	Short: "Sovereign Media site backend",
	Long: `Serves the client proposal and portal gate, the auth endpoints,
the Reg A+ calculator API and the project portfolio.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the TOML config file")
}

func defaultConfigPath() string {
	if p := os.Getenv("SOVEREIGN_CONFIG"); p != "" {
		return p
	}
	return "sovereign.toml"
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("config", err)
	}
	return cfg
}
