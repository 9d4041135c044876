package cmd

import (
	"fmt"

	"github.com/actifly/api/internal/config"

	"github.com/spf13/cobra"
)

var (
	configureEndpoint string
	configureToken    string
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store the API endpoint and admin token in ~/.actifly/config.yaml",
	RunE: func(_ *cobra.Command, _ []string) error {
		if configureEndpoint == "" || configureToken == "" {
			return fmt.Errorf("both --endpoint and --token are required")
		}

		if err := config.Save(&config.Config{
			APIEndpoint: configureEndpoint,
			AdminToken:  configureToken,
		}); err != nil {
			return err
		}

		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("configuration saved to %s\n", path)

		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureEndpoint, "endpoint", "", "beta API base URL")
	configureCmd.Flags().StringVar(&configureToken, "token", "", "admin token")
	rootCmd.AddCommand(configureCmd)
}
