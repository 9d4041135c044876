package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate beta signup counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		resp, err := apiClient.Stats(ctx)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("Beta signups (%s)\n", resp.ListKeyVersion)
		fmt.Printf("  total:   %d\n", resp.Counts.Total)
		fmt.Printf("  android: %d\n", resp.Counts.Android)
		fmt.Printf("  ios:     %d\n", resp.Counts.IOS)
		fmt.Printf("  google:  %d\n", resp.Counts.Google)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
