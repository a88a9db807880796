package cmd

import (
	"os"

	"github.com/nfrund/regdesk/internal/config"
	"github.com/nfrund/regdesk/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "regdesk",
	Short: "Event registration site and identity webhook receiver",
	Long: `regdesk serves the attendee registration site and mirrors users
created in the identity provider into the backing store.

Available commands:
  serve           Run the HTTP server
  schema apply    Create or migrate the store schema
  webhook sign    Sign a payload the way the provider does
  version         Print the version

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration and installs the
// logger it describes.
func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	logging.New(cfg.LogFormat, cfg.LogLevel)
	return cfg, nil
}
