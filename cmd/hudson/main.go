// Package main implements the hudson server CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dukerupert/hudson/internal/config"
	"github.com/dukerupert/hudson/internal/logging"
)

var envFiles []string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "hudson",
	Short:        "Property lifecycle and collaborative planning server",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading configuration (default .env)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
