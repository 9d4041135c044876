package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/actifly/api/internal/constants"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the beta signup list as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()

		csv, err := apiClient.Export(ctx)
		if err != nil {
			return err
		}

		if exportOutput == "-" {
			_, err = os.Stdout.Write(csv)
			return err
		}

		if err = os.WriteFile(exportOutput, csv, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(csv), exportOutput)

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", constants.ExportFilename,
		"output file, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}
