package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jjenkins/civiq/internal/config"
	"github.com/jjenkins/civiq/internal/logging"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "civiq",
	Short: "Civic data service for U.S. representatives and districts",
	Long: `civiq aggregates Congress.gov, FEC, Census, OpenStates, USAspending,
GovInfo and GDELT data about members of Congress and congressional districts
behind a cached JSON API and a small server-rendered site.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./config.yaml or ./config/config.yaml)")
}

// setup loads configuration and installs the logger
func setup() *config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return cfg
}
