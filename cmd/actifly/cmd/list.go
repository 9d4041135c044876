package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List raw beta signup records in stored order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		resp, err := apiClient.List(ctx)
		if err != nil {
			return err
		}

		if len(resp.List) == 0 {
			fmt.Println("no signups yet")
			return nil
		}

		faint := color.New(color.Faint)
		for i, rec := range resp.List {
			fmt.Printf("%3d  %-40s %-8s", i+1, rec.Email, rec.Category)
			faint.Printf("  %s", rec.Timestamp)
			if rec.Country != "" {
				faint.Printf("  %s", rec.Country)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
