// Package cmd implements the actifly admin CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/actifly/api/internal/client"
	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/constants"
	"github.com/actifly/api/internal/logger"

	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

var (
	cfg       *config.Config
	apiClient *client.Client
	log       *slog.Logger
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "actifly",
	Short: "Admin CLI for the actifly beta signup API",
	Long: `actifly inspects and exports the beta signup list through the
beta-admin API. Run "actifly configure" once to store the API endpoint
and admin token in ~/.actifly/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		log = logger.Initialize(constants.Development, level)

		// configure runs before any config file exists
		if cmd.Name() == "configure" {
			return nil
		}

		var err error
		cfg, err = config.LoadCLI()
		if err != nil {
			return fmt.Errorf("no usable configuration, run \"actifly configure\" first: %w", err)
		}
		if cfg.APIEndpoint == "" || cfg.AdminToken == "" {
			return fmt.Errorf("api_endpoint and beta_admin_token must be set, run \"actifly configure\"")
		}

		apiClient = client.New(cfg, log)
		return nil
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
